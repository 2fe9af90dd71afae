package tensor

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"linal/internal/errs"
)

// BinOp names an element-wise binary operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op BinOp) apply(x, y float64) (float64, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpDiv:
		if y == 0 {
			return 0, &errs.ArithmeticError{Reason: "division by zero"}
		}
		return x / y, nil
	default:
		return 0, &errs.Internal{Msg: "unknown binary op"}
	}
}

// identity returns the operator's identity element used to pad the
// shorter operand in relaxed rank-1 broadcasting: 0 for add/sub, 1 for
// mul/div.
func (op BinOp) identity() float64 {
	switch op {
	case OpAdd, OpSub:
		return 0
	default:
		return 1
	}
}

// BinaryStrict applies op element-wise. Both operands must have identical
// shapes; otherwise it fails with ShapeMismatch.
func BinaryStrict(op BinOp, a, b *Tensor, newID uint64) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, &errs.ShapeMismatch{Expected: []int(a.shape), Actual: []int(b.shape)}
	}
	data := make([]float64, len(a.data))
	for i := range a.data {
		v, err := op.apply(a.data[i], b.data[i])
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return New(newID, a.shape, data)
}

// BinaryRelaxed applies op element-wise with broadcasting: a scalar (rank
// 0, or a degenerate length-1 tensor) broadcasts against any shape; two
// rank-1 tensors of different length produce a result of the longer
// length, padding the shorter operand with the operator's identity.
// Any other shape mismatch fails with ShapeMismatch.
func BinaryRelaxed(op BinOp, a, b *Tensor, newID uint64) (*Tensor, error) {
	if a.shape.Equal(b.shape) {
		return BinaryStrict(op, a, b, newID)
	}
	switch {
	case a.IsScalarLike() && !b.IsScalarLike():
		return broadcastScalar(op, a.data[0], b, newID, true)
	case b.IsScalarLike() && !a.IsScalarLike():
		return broadcastScalar(op, b.data[0], a, newID, false)
	case a.IsScalarLike() && b.IsScalarLike():
		if a.Rank() >= b.Rank() {
			return broadcastScalar(op, b.data[0], a, newID, false)
		}
		return broadcastScalar(op, a.data[0], b, newID, true)
	case a.Rank() == 1 && b.Rank() == 1:
		return padRank1(op, a, b, newID)
	default:
		return nil, &errs.ShapeMismatch{Expected: []int(a.shape), Actual: []int(b.shape)}
	}
}

func broadcastScalar(op BinOp, scalar float64, t *Tensor, newID uint64, scalarFirst bool) (*Tensor, error) {
	data := make([]float64, len(t.data))
	for i, x := range t.data {
		var v float64
		var err error
		if scalarFirst {
			v, err = op.apply(scalar, x)
		} else {
			v, err = op.apply(x, scalar)
		}
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return New(newID, t.shape, data)
}

func padRank1(op BinOp, a, b *Tensor, newID uint64) (*Tensor, error) {
	la, lb := len(a.data), len(b.data)
	n := la
	if lb > n {
		n = lb
	}
	neutral := op.identity()
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		x, y := neutral, neutral
		if i < la {
			x = a.data[i]
		}
		if i < lb {
			y = b.data[i]
		}
		v, err := op.apply(x, y)
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return New(newID, Shape{n}, data)
}

// Scale multiplies every element of a by s, for any shape.
func Scale(a *Tensor, s float64, newID uint64) (*Tensor, error) {
	data := make([]float64, len(a.data))
	for i, x := range a.data {
		data[i] = x * s
	}
	return New(newID, a.shape, data)
}

// MatMul multiplies A: [m,k] by B: [k,n], producing C: [m,n]. Both
// operands must be rank 2 and their inner dimensions must agree.
func MatMul(a, b *Tensor, newID uint64) (*Tensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, &errs.TypeError{Op: "matmul", Types: []string{rankLabel(a), rankLabel(b)}}
	}
	m, k := a.shape[0], a.shape[1]
	k2, n := b.shape[0], b.shape[1]
	if k != k2 {
		return nil, &errs.ShapeMismatch{Expected: []int{m, k}, Actual: []int{k2, n}}
	}
	am := mat.NewDense(m, k, append([]float64(nil), a.data...))
	bm := mat.NewDense(k, n, append([]float64(nil), b.data...))
	var cm mat.Dense
	cm.Mul(am, bm)
	data := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = cm.At(i, j)
		}
	}
	return New(newID, Shape{m, n}, data)
}

// Transpose swaps the two dimensions of a rank-2 tensor.
func Transpose(a *Tensor, newID uint64) (*Tensor, error) {
	if a.Rank() != 2 {
		return nil, &errs.TypeError{Op: "transpose", Types: []string{rankLabel(a)}}
	}
	rows, cols := a.shape[0], a.shape[1]
	am := mat.NewDense(rows, cols, append([]float64(nil), a.data...))
	data := make([]float64, rows*cols)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			data[i*rows+j] = am.At(j, i)
		}
	}
	return New(newID, Shape{cols, rows}, data)
}

// Reshape reinterprets a's data under newShape. The element counts of the
// old and new shapes must match.
func Reshape(a *Tensor, newShape Shape, newID uint64) (*Tensor, error) {
	if a.shape.NumElements() != newShape.NumElements() {
		return nil, &errs.ShapeMismatch{Expected: []int(a.shape), Actual: []int(newShape)}
	}
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return New(newID, newShape, data)
}

// Flatten collapses a tensor to a single rank-1 dimension.
func Flatten(a *Tensor, newID uint64) (*Tensor, error) {
	return Reshape(a, Shape{a.shape.NumElements()}, newID)
}

// Stack combines tensors of identical shape along a new leading axis.
func Stack(ts []*Tensor, newID uint64) (*Tensor, error) {
	if len(ts) == 0 {
		return nil, &errs.Internal{Msg: "stack: no tensors given"}
	}
	first := ts[0].shape
	for i, t := range ts[1:] {
		if !t.shape.Equal(first) {
			return nil, &errs.ShapeMismatch{Expected: []int(first), Actual: []int(t.shape)}
		}
		_ = i
	}
	newShape := make(Shape, 0, len(first)+1)
	newShape = append(newShape, len(ts))
	newShape = append(newShape, first...)
	data := make([]float64, 0, newShape.NumElements())
	for _, t := range ts {
		data = append(data, t.data...)
	}
	return New(newID, newShape, data)
}

// Dot computes the inner product of two rank-1 tensors of equal length.
func Dot(a, b *Tensor) (float64, error) {
	if err := requireEqualRank1(a, b); err != nil {
		return 0, err
	}
	return floats.Dot(a.data, b.data), nil
}

// L2Norm computes the Euclidean norm of a rank-1 tensor.
func L2Norm(a *Tensor) (float64, error) {
	if a.Rank() != 1 {
		return 0, &errs.TypeError{Op: "l2_norm", Types: []string{rankLabel(a)}}
	}
	return floats.Norm(a.data, 2), nil
}

// Cosine computes the cosine similarity of two rank-1 tensors of equal
// length. If either operand has zero norm, it returns 0 rather than
// failing or producing NaN.
func Cosine(a, b *Tensor) (float64, error) {
	if err := requireEqualRank1(a, b); err != nil {
		return 0, err
	}
	na := floats.Norm(a.data, 2)
	nb := floats.Norm(b.data, 2)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return floats.Dot(a.data, b.data) / (na * nb), nil
}

// L2Distance computes the Euclidean distance between two rank-1 tensors
// of equal length.
func L2Distance(a, b *Tensor) (float64, error) {
	if err := requireEqualRank1(a, b); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range a.data {
		d := a.data[i] - b.data[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Normalize scales a rank-1 tensor to unit L2 norm. A zero vector is
// returned unchanged rather than producing NaN.
func Normalize(a *Tensor, newID uint64) (*Tensor, error) {
	if a.Rank() != 1 {
		return nil, &errs.TypeError{Op: "normalize", Types: []string{rankLabel(a)}}
	}
	norm := floats.Norm(a.data, 2)
	if norm == 0 {
		return a.Clone(newID), nil
	}
	return Scale(a, 1/norm, newID)
}

func requireEqualRank1(a, b *Tensor) error {
	if a.Rank() != 1 || b.Rank() != 1 {
		return &errs.TypeError{Op: "vector metric", Types: []string{rankLabel(a), rankLabel(b)}}
	}
	if len(a.data) != len(b.data) {
		return &errs.ShapeMismatch{Expected: []int(a.shape), Actual: []int(b.shape)}
	}
	return nil
}

func rankLabel(t *Tensor) string {
	return t.shape.String()
}

// IndexSpec is one component of a multi-dimensional tensor index: either a
// literal position along that dimension, or a wildcard meaning "take the
// whole dimension".
type IndexSpec struct {
	Wildcard bool
	Index    int
}

// Lit constructs a literal IndexSpec.
func Lit(i int) IndexSpec { return IndexSpec{Index: i} }

// Wildcard constructs a wildcard IndexSpec ("*").
func Wildcard() IndexSpec { return IndexSpec{Wildcard: true} }

// Index selects along each dimension per specs, one spec per dimension of
// a. The result's rank equals the number of wildcard specs, in the order
// they appear in specs. Out-of-range literal indices fail with
// IndexOutOfRange.
func Index(a *Tensor, specs []IndexSpec, newID uint64) (*Tensor, error) {
	if len(specs) != a.Rank() {
		return nil, &errs.Internal{Msg: "index spec count does not match tensor rank"}
	}
	for i, sp := range specs {
		if !sp.Wildcard {
			if sp.Index < 0 || sp.Index >= a.shape[i] {
				return nil, &errs.IndexOutOfRange{Dim: i, Value: sp.Index}
			}
		}
	}

	var outShape Shape
	for i, sp := range specs {
		if sp.Wildcard {
			outShape = append(outShape, a.shape[i])
		}
	}

	st := a.shape.strides()
	base := 0
	for i, sp := range specs {
		if !sp.Wildcard {
			base += sp.Index * st[i]
		}
	}

	n := outShape.NumElements()
	data := make([]float64, 0, n)
	idx := make([]int, 0, len(outShape))
	var walk func(dim int)
	wildcardDims := wildcardDimIndices(specs)
	walk = func(pos int) {
		if pos == len(wildcardDims) {
			flat := base
			for j, dim := range wildcardDims {
				flat += idx[j] * st[dim]
			}
			data = append(data, a.data[flat])
			return
		}
		dim := wildcardDims[pos]
		for i := 0; i < a.shape[dim]; i++ {
			idx = append(idx, i)
			walk(pos + 1)
			idx = idx[:len(idx)-1]
		}
	}
	if len(wildcardDims) == 0 {
		data = append(data, a.data[base])
	} else {
		walk(0)
	}
	return New(newID, outShape, data)
}

func wildcardDimIndices(specs []IndexSpec) []int {
	var out []int
	for i, sp := range specs {
		if sp.Wildcard {
			out = append(out, i)
		}
	}
	return out
}
