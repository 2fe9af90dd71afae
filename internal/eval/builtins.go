package eval

import (
	"strconv"
	"strings"

	"linal/internal/errs"
	"linal/internal/tensor"
	"linal/internal/value"
)

// callBuiltin dispatches a Call node's function name to the tensor kernel
// it names. Aggregate names (SUM, AVG, MIN, MAX, COUNT) are only
// meaningful inside a GroupBy/HAVING plan stage, which the executor
// evaluates directly rather than routing through Eval, so a bare
// aggregate call here fails with a TypeError ("non-aggregate context").
func callBuiltin(name string, args []value.Value) (value.Value, error) {
	switch strings.ToUpper(name) {
	case "DOT":
		a, b, err := twoVectors(name, args)
		if err != nil {
			return value.Null, err
		}
		d, err := tensor.Dot(a, b)
		if err != nil {
			return value.Null, err
		}
		return value.Float(d), nil

	case "COSINE":
		a, b, err := twoVectors(name, args)
		if err != nil {
			return value.Null, err
		}
		c, err := tensor.Cosine(a, b)
		if err != nil {
			return value.Null, err
		}
		return value.Float(c), nil

	case "L2":
		a, b, err := twoVectors(name, args)
		if err != nil {
			return value.Null, err
		}
		d, err := tensor.L2Distance(a, b)
		if err != nil {
			return value.Null, err
		}
		return value.Float(d), nil

	case "NORMALIZE":
		t, err := oneTensor(name, args)
		if err != nil {
			return value.Null, err
		}
		out, err := tensor.Normalize(t, tensor.NextID())
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case "SCALE":
		if len(args) != 2 {
			return value.Null, arityErr(name, 2, len(args))
		}
		t, err := oneTensor(name, args[:1])
		if err != nil {
			return value.Null, err
		}
		s, err := value.AsFloat(args[1])
		if err != nil {
			return value.Null, err
		}
		out, err := tensor.Scale(t, s, tensor.NextID())
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case "TRANSPOSE":
		t, err := oneTensor(name, args)
		if err != nil {
			return value.Null, err
		}
		out, err := tensor.Transpose(t, tensor.NextID())
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case "FLATTEN":
		t, err := oneTensor(name, args)
		if err != nil {
			return value.Null, err
		}
		out, err := tensor.Flatten(t, tensor.NextID())
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case "RESHAPE":
		if len(args) < 2 {
			return value.Null, arityErr(name, 2, len(args))
		}
		t, err := oneTensor(name, args[:1])
		if err != nil {
			return value.Null, err
		}
		shape := make(tensor.Shape, len(args)-1)
		for i, a := range args[1:] {
			n, err := value.AsInt(a)
			if err != nil {
				return value.Null, err
			}
			shape[i] = int(n)
		}
		out, err := tensor.Reshape(t, shape, tensor.NextID())
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case "STACK":
		ts := make([]*tensor.Tensor, len(args))
		for i, a := range args {
			t := a.TensorHandle()
			if t == nil {
				return value.Null, &errs.TypeError{Op: name, Types: []string{a.Kind().String()}}
			}
			ts[i] = t
		}
		out, err := tensor.Stack(ts, tensor.NextID())
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case "MATMUL":
		if len(args) != 2 {
			return value.Null, arityErr(name, 2, len(args))
		}
		a := args[0].TensorHandle()
		b := args[1].TensorHandle()
		if a == nil || b == nil {
			return value.Null, &errs.TypeError{Op: name, Types: []string{args[0].Kind().String(), args[1].Kind().String()}}
		}
		out, err := tensor.MatMul(a, b, tensor.NextID())
		if err != nil {
			return value.Null, err
		}
		return wrapTensorResult(out), nil

	case "SUM", "AVG", "MIN", "MAX", "COUNT":
		return value.Null, &errs.TypeError{Op: name, Types: []string{"non-aggregate context"}}

	default:
		return value.Null, &errs.Unsupported{Op: "function " + name}
	}
}

func twoVectors(name string, args []value.Value) (*tensor.Tensor, *tensor.Tensor, error) {
	if len(args) != 2 {
		return nil, nil, arityErr(name, 2, len(args))
	}
	a, b := args[0].TensorHandle(), args[1].TensorHandle()
	if a == nil || b == nil {
		return nil, nil, &errs.TypeError{Op: name, Types: []string{args[0].Kind().String(), args[1].Kind().String()}}
	}
	return a, b, nil
}

func oneTensor(name string, args []value.Value) (*tensor.Tensor, error) {
	if len(args) != 1 {
		return nil, arityErr(name, 1, len(args))
	}
	t := args[0].TensorHandle()
	if t == nil {
		return nil, &errs.TypeError{Op: name, Types: []string{args[0].Kind().String()}}
	}
	return t, nil
}

func arityErr(name string, want, got int) error {
	return &errs.TypeError{Op: name, Types: []string{"expected " + strconv.Itoa(want) + " args, got " + strconv.Itoa(got)}}
}
