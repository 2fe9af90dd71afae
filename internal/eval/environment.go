package eval

import "linal/internal/value"

// Environment is whatever Eval needs to resolve free names: the current
// row's materialized columns, the stored expressions of its lazy columns,
// any pre-computed lookups (aggregate results during HAVING), and bound
// tuples for dot-field access. Dataset rows implement this directly;
// nothing in this package depends on the dataset package, so the
// dependency only runs one way.
type Environment interface {
	// Lookup resolves a materialized column or ambient free variable.
	Lookup(name string) (value.Value, bool)
	// LazyExpr returns the stored expression of a lazy computed column.
	LazyExpr(name string) (Expr, bool)
	// Computed resolves a ComputedLookup binding.
	Computed(name string) (value.Value, bool)
	// Tuple resolves a bound tuple by name, for TupleField access.
	Tuple(name string) (map[string]value.Value, bool)
}

// MapEnvironment is a trivial Environment backed by plain maps, used by
// tests and by ambient-only evaluation contexts (no current row).
type MapEnvironment struct {
	Values   map[string]value.Value
	Lazy     map[string]Expr
	Computes map[string]value.Value
	Tuples   map[string]map[string]value.Value
}

func (e *MapEnvironment) Lookup(name string) (value.Value, bool) {
	v, ok := e.Values[name]
	return v, ok
}

func (e *MapEnvironment) LazyExpr(name string) (Expr, bool) {
	expr, ok := e.Lazy[name]
	return expr, ok
}

func (e *MapEnvironment) Computed(name string) (value.Value, bool) {
	v, ok := e.Computes[name]
	return v, ok
}

func (e *MapEnvironment) Tuple(name string) (map[string]value.Value, bool) {
	t, ok := e.Tuples[name]
	return t, ok
}
