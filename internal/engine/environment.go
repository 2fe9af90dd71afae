package engine

import (
	"linal/internal/eval"
	"linal/internal/value"
)

// bindingsEnv adapts a database instance's named tensor/scalar bindings
// to eval.Environment, for top-level LET expressions that have no
// current row: there is nothing lazy or tuple-bound at this level.
type bindingsEnv struct {
	instance *DatabaseInstance
}

func (e bindingsEnv) Lookup(name string) (value.Value, bool) {
	return e.instance.Binding(name)
}

func (e bindingsEnv) LazyExpr(string) (eval.Expr, bool) { return nil, false }

func (e bindingsEnv) Computed(string) (value.Value, bool) { return value.Value{}, false }

func (e bindingsEnv) Tuple(string) (map[string]value.Value, bool) { return nil, false }
