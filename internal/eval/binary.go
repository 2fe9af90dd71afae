package eval

import (
	"linal/internal/errs"
	"linal/internal/tensor"
	"linal/internal/value"
)

func evalBinary(e *Binary, env Environment, ctx *evalCtx) (value.Value, error) {
	l, err := evalWith(e.Left, env, ctx)
	if err != nil {
		return value.Null, err
	}

	// AND/OR short-circuit before evaluating the right operand.
	if e.Op == OpAnd || e.Op == OpOr {
		lb, err := asBool(l)
		if err != nil {
			return value.Null, err
		}
		if e.Op == OpAnd && !lb {
			return value.Bool(false), nil
		}
		if e.Op == OpOr && lb {
			return value.Bool(true), nil
		}
		r, err := evalWith(e.Right, env, ctx)
		if err != nil {
			return value.Null, err
		}
		rb, err := asBool(r)
		if err != nil {
			return value.Null, err
		}
		return value.Bool(rb), nil
	}

	r, err := evalWith(e.Right, env, ctx)
	if err != nil {
		return value.Null, err
	}

	switch e.Op {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return evalComparison(e.Op, l, r)
	default:
		return evalArith(e.Op, l, r)
	}
}

func asBool(v value.Value) (bool, error) {
	if v.Kind() != value.KindBool {
		return false, &errs.TypeError{Op: "boolean operator", Types: []string{v.Kind().String()}}
	}
	return v.BoolVal(), nil
}

func evalComparison(op BinOp, l, r value.Value) (value.Value, error) {
	if l.Kind() == value.KindNull || r.Kind() == value.KindNull {
		return value.Null, nil
	}
	if op == OpEq {
		return value.Bool(value.Equal(l, r)), nil
	}
	if op == OpNeq {
		return value.Bool(!value.Equal(l, r)), nil
	}
	cmp, ok := value.Compare(l, r)
	if !ok {
		return value.Null, &errs.TypeError{Op: "comparison", Types: []string{l.Kind().String(), r.Kind().String()}}
	}
	switch op {
	case OpLt:
		return value.Bool(cmp < 0), nil
	case OpLte:
		return value.Bool(cmp <= 0), nil
	case OpGt:
		return value.Bool(cmp > 0), nil
	default:
		return value.Bool(cmp >= 0), nil
	}
}

func evalArith(op BinOp, l, r value.Value) (value.Value, error) {
	lt, rt := tensorLike(l), tensorLike(r)

	switch {
	case l.Kind() == value.KindString && r.Kind() == value.KindString && op == OpAdd:
		return value.String(l.Str() + r.Str()), nil

	case lt != nil && rt != nil:
		out, err := tensor.BinaryRelaxed(toTensorOp(op), lt, rt, tensor.NextID())
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case lt != nil && isNumericScalar(r):
		s, _ := value.AsFloat(r)
		out, err := tensorScalarOp(op, lt, s)
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case rt != nil && isNumericScalar(l):
		s, _ := value.AsFloat(l)
		out, err := scalarTensorOp(op, s, rt)
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case isNumericScalar(l) && isNumericScalar(r):
		return numericArith(op, l, r)

	default:
		return value.Null, &errs.TypeError{Op: "arithmetic", Types: []string{l.Kind().String(), r.Kind().String()}}
	}
}

func tensorLike(v value.Value) *tensor.Tensor {
	switch v.Kind() {
	case value.KindVector, value.KindMatrix, value.KindTensor:
		return v.TensorHandle()
	default:
		return nil
	}
}

func isNumericScalar(v value.Value) bool {
	return v.Kind() == value.KindInt || v.Kind() == value.KindFloat
}

func toTensorOp(op BinOp) tensor.BinOp {
	switch op {
	case OpAdd:
		return tensor.OpAdd
	case OpSub:
		return tensor.OpSub
	case OpMul:
		return tensor.OpMul
	default:
		return tensor.OpDiv
	}
}

func tensorScalarOp(op BinOp, t *tensor.Tensor, s float64) (*tensor.Tensor, error) {
	scalar := tensor.Scalar(tensor.NextID(), s)
	return tensor.BinaryRelaxed(toTensorOp(op), t, scalar, tensor.NextID())
}

func scalarTensorOp(op BinOp, s float64, t *tensor.Tensor) (*tensor.Tensor, error) {
	scalar := tensor.Scalar(tensor.NextID(), s)
	return tensor.BinaryRelaxed(toTensorOp(op), scalar, t, tensor.NextID())
}

func numericArith(op BinOp, l, r value.Value) (value.Value, error) {
	if l.Kind() == value.KindInt && r.Kind() == value.KindInt && op != OpDiv {
		li, ri := l.Int64(), r.Int64()
		switch op {
		case OpAdd:
			return value.Int(li + ri), nil
		case OpSub:
			return value.Int(li - ri), nil
		case OpMul:
			return value.Int(li * ri), nil
		}
	}
	lf, _ := value.AsFloat(l)
	rf, _ := value.AsFloat(r)
	switch op {
	case OpAdd:
		return value.Float(lf + rf), nil
	case OpSub:
		return value.Float(lf - rf), nil
	case OpMul:
		return value.Float(lf * rf), nil
	case OpDiv:
		if rf == 0 {
			return value.Null, &errs.ArithmeticError{Reason: "division by zero"}
		}
		return value.Float(lf / rf), nil
	default:
		return value.Null, &errs.Internal{Msg: "unknown arithmetic operator"}
	}
}

func evalUnary(e *Unary, env Environment, ctx *evalCtx) (value.Value, error) {
	v, err := evalWith(e.Operand, env, ctx)
	if err != nil {
		return value.Null, err
	}
	switch e.Op {
	case OpNeg:
		switch v.Kind() {
		case value.KindInt:
			return value.Int(-v.Int64()), nil
		case value.KindFloat:
			return value.Float(-v.Float64()), nil
		case value.KindVector, value.KindMatrix, value.KindTensor:
			out, err := tensor.Scale(v.TensorHandle(), -1, tensor.NextID())
			if err != nil {
				return value.Null, err
			}
			return wrapTensorResult(out), nil
		default:
			return value.Null, &errs.TypeError{Op: "negate", Types: []string{v.Kind().String()}}
		}
	case OpNot:
		b, err := asBool(v)
		if err != nil {
			return value.Null, err
		}
		return value.Bool(!b), nil
	default:
		return value.Null, &errs.Internal{Msg: "unknown unary operator"}
	}
}
