package eval

import (
	"linal/internal/errs"
	"linal/internal/tensor"
	"linal/internal/value"
)

// evalCtx carries per-call cycle-detection state across a lazy-column
// re-entry chain. It is not part of Environment because it is scoped to
// one Eval call, not to the environment's lifetime.
type evalCtx struct {
	inProgress map[string]bool
}

// Eval evaluates expr against env. It is pure: repeated calls with the
// same expr and env yield the same result.
func Eval(expr Expr, env Environment) (value.Value, error) {
	return evalWith(expr, env, &evalCtx{inProgress: make(map[string]bool)})
}

func evalWith(expr Expr, env Environment, ctx *evalCtx) (value.Value, error) {
	switch e := expr.(type) {
	case *Literal:
		return e.Value, nil

	case *ColumnRef:
		if v, ok := env.Lookup(e.Name); ok {
			return v, nil
		}
		if lazy, ok := env.LazyExpr(e.Name); ok {
			if ctx.inProgress[e.Name] {
				return value.Null, &errs.CyclicExpression{Column: e.Name}
			}
			ctx.inProgress[e.Name] = true
			defer delete(ctx.inProgress, e.Name)
			return evalWith(lazy, env, ctx)
		}
		return value.Null, &errs.NotFound{Kind: "column", Name: e.Name}

	case *TupleField:
		ref, ok := e.Base.(*ColumnRef)
		if !ok {
			return value.Null, &errs.TypeError{Op: "tuple_field", Types: []string{"non-tuple base expression"}}
		}
		tup, ok := env.Tuple(ref.Name)
		if !ok {
			return value.Null, &errs.NotFound{Kind: "tuple", Name: ref.Name}
		}
		v, ok := tup[e.Field]
		if !ok {
			return value.Null, &errs.NotFound{Kind: "tuple field", Name: e.Field}
		}
		return v, nil

	case *TensorIndex:
		base, err := evalWith(e.Target, env, ctx)
		if err != nil {
			return value.Null, err
		}
		th := base.TensorHandle()
		if th == nil {
			return value.Null, &errs.TypeError{Op: "tensor_index", Types: []string{base.Kind().String()}}
		}
		specs := make([]tensor.IndexSpec, len(e.Indices))
		for i, comp := range e.Indices {
			if comp.Wildcard {
				specs[i] = tensor.Wildcard()
				continue
			}
			iv, err := evalWith(comp.Index, env, ctx)
			if err != nil {
				return value.Null, err
			}
			n, err := value.AsInt(iv)
			if err != nil {
				return value.Null, err
			}
			specs[i] = tensor.Lit(int(n))
		}
		out, err := tensor.Index(th, specs, tensor.NextID())
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case *Binary:
		return evalBinary(e, env, ctx)

	case *Unary:
		return evalUnary(e, env, ctx)

	case *Call:
		args := make([]value.Value, len(e.Args))
		for i, a := range e.Args {
			v, err := evalWith(a, env, ctx)
			if err != nil {
				return value.Null, err
			}
			args[i] = v
		}
		return callBuiltin(e.Name, args)

	case *ComputedLookup:
		v, ok := env.Computed(e.Column)
		if !ok {
			return value.Null, &errs.NotFound{Kind: "computed value", Name: e.Column}
		}
		return v, nil

	default:
		return value.Null, &errs.Internal{Msg: "unknown expression node"}
	}
}

// wrapTensorResult re-tags a kernel result by its resulting rank, since a
// tensor operation can narrow a Matrix down to a Vector or a scalar-shaped
// rank-0 tensor.
func wrapTensorResult(t *tensor.Tensor) value.Value {
	switch t.Rank() {
	case 0:
		return value.Float(t.Data()[0])
	case 1:
		return value.Vector(t)
	case 2:
		return value.Matrix(t)
	default:
		return value.Tensor(t)
	}
}
