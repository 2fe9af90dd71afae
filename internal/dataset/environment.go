package dataset

import (
	"linal/internal/eval"
	"linal/internal/value"
)

// rowEnv adapts one row of a dataset (plus optional ambient bindings) to
// eval.Environment, so the evaluator never needs to know about Dataset or
// Row directly.
type rowEnv struct {
	ds           *Dataset
	row          Row
	ambient      map[string]value.Value
	tuples       map[string]map[string]value.Value
	computedVals map[string]value.Value
}

// RowEnvironment builds the evaluation environment for row: column
// lookups resolve against row's own values and the dataset's lazy-column
// descriptors, falling back to ambient free variables, tuples, and any
// pre-computed bindings (e.g. aggregate results visible to HAVING).
func (d *Dataset) RowEnvironment(row Row, ambient map[string]value.Value, tuples map[string]map[string]value.Value, computedVals map[string]value.Value) eval.Environment {
	return &rowEnv{ds: d, row: row, ambient: ambient, tuples: tuples, computedVals: computedVals}
}

func (e *rowEnv) Lookup(name string) (value.Value, bool) {
	if i := e.ds.Schema.IndexOf(name); i >= 0 && i < len(e.row.Values) {
		if cc, ok := e.ds.computed[name]; ok && !cc.Materialized {
			return value.Null, false
		}
		return e.row.Values[i], true
	}
	if v, ok := e.ambient[name]; ok {
		return v, true
	}
	return value.Null, false
}

func (e *rowEnv) LazyExpr(name string) (eval.Expr, bool) {
	cc, ok := e.ds.computed[name]
	if !ok || cc.Materialized {
		return nil, false
	}
	return cc.Expr, true
}

func (e *rowEnv) Computed(name string) (value.Value, bool) {
	v, ok := e.computedVals[name]
	return v, ok
}

func (e *rowEnv) Tuple(name string) (map[string]value.Value, bool) {
	t, ok := e.tuples[name]
	return t, ok
}
