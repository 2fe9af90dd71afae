package exec

import (
	"linal/internal/errs"
	"linal/internal/eval"
	"linal/internal/value"
)

// rowEnv adapts an exec.Row to eval.Environment for expression
// evaluation. No lazy-column resolution happens at this layer: every
// row reaching an Operator has already passed through
// Dataset.ResolveRow, so every value here is already materialized.
type rowEnv struct {
	names   []string
	row     Row
	ambient map[string]value.Value
}

func (e *rowEnv) Lookup(name string) (value.Value, bool) {
	for i, n := range e.names {
		if n == name {
			return e.row.Values[i], true
		}
	}
	if v, ok := e.ambient[name]; ok {
		return v, true
	}
	return value.Null, false
}

func (e *rowEnv) LazyExpr(string) (eval.Expr, bool)       { return nil, false }
func (e *rowEnv) Computed(string) (value.Value, bool)     { return value.Null, false }
func (e *rowEnv) Tuple(string) (map[string]value.Value, bool) { return nil, false }

// FilterOp keeps only rows for which Pred evaluates to a true Bool.
type FilterOp struct {
	ctx     *Context
	input   Operator
	names   []string
	pred    eval.Expr
	n       int
}

func NewFilter(ctx *Context, input Operator, names []string, pred eval.Expr) *FilterOp {
	return &FilterOp{ctx: ctx, input: input, names: names, pred: pred}
}

func (f *FilterOp) Open() error { return f.input.Open() }

func (f *FilterOp) Next() (Row, bool, error) {
	for {
		if f.n%deadlineCheckBatch == 0 {
			if err := f.ctx.CheckDeadline(); err != nil {
				return Row{}, false, err
			}
		}
		row, ok, err := f.input.Next()
		if err != nil || !ok {
			return Row{}, ok, err
		}
		f.n++
		env := &rowEnv{names: f.names, row: row, ambient: f.ctx.Ambient}
		v, err := eval.Eval(f.pred, env)
		if err != nil {
			return Row{}, false, err
		}
		if v.Kind() == value.KindNull {
			continue
		}
		if v.Kind() != value.KindBool {
			return Row{}, false, &errs.TypeError{Op: "filter predicate", Types: []string{v.Kind().String()}}
		}
		if v.BoolVal() {
			return row, true, nil
		}
	}
}

func (f *FilterOp) Close() error { return f.input.Close() }
