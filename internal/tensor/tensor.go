package tensor

import (
	"math"
	"sync/atomic"

	"linal/internal/errs"
)

var idCounter atomic.Uint64

// NextID returns a fresh, process-unique tensor handle ID. Kernels call
// this for every tensor they allocate so each handle carries a distinct
// identity (readable via ID) without a central allocator object being
// threaded everywhere.
func NextID() uint64 {
	return idCounter.Add(1)
}

// Tensor is a dense, row-major array of float64 values with a fixed shape.
// Once constructed its data is never mutated in place; every operation in
// this package returns a new Tensor.
type Tensor struct {
	id    uint64
	shape Shape
	data  []float64
}

// New constructs a tensor, validating that data's length matches the
// shape's element count.
func New(id uint64, shape Shape, data []float64) (*Tensor, error) {
	want := shape.NumElements()
	if len(data) != want {
		return nil, &errs.ShapeMismatch{Expected: []int{want}, Actual: []int{len(data)}}
	}
	return &Tensor{id: id, shape: shape.Clone(), data: data}, nil
}

// Scalar constructs a rank-0 tensor holding a single value.
func Scalar(id uint64, v float64) *Tensor {
	return &Tensor{id: id, shape: Shape{}, data: []float64{v}}
}

// ID returns the tensor's handle identity.
func (t *Tensor) ID() uint64 { return t.id }

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape { return t.shape }

// Rank returns the tensor's rank.
func (t *Tensor) Rank() int { return t.shape.Rank() }

// Len returns the total element count.
func (t *Tensor) Len() int { return len(t.data) }

// Data returns the tensor's underlying row-major slice. Callers must treat
// it as read-only: tensor bodies are immutable after construction.
func (t *Tensor) Data() []float64 { return t.data }

// IsScalarLike reports whether the tensor behaves as a scalar for
// broadcasting purposes: rank 0, or a degenerate length-1 tensor of any
// rank.
func (t *Tensor) IsScalarLike() bool {
	return t.Rank() == 0 || len(t.data) == 1
}

// At returns the element at the given multi-index. len(indices) must equal
// the tensor's rank.
func (t *Tensor) At(indices ...int) (float64, error) {
	if len(indices) != t.Rank() {
		return 0, &errs.Internal{Msg: "index rank mismatch"}
	}
	st := t.shape.strides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			return 0, &errs.IndexOutOfRange{Dim: i, Value: idx}
		}
		flat += idx * st[i]
	}
	return t.data[flat], nil
}

// Equal reports shape-and-elementwise equality, comparing each element's
// exact bit pattern so NaN and signed zero compare consistently.
func (t *Tensor) Equal(o *Tensor) bool {
	if o == nil {
		return false
	}
	if !t.shape.Equal(o.shape) {
		return false
	}
	for i := range t.data {
		if math.Float64bits(t.data[i]) != math.Float64bits(o.data[i]) {
			return false
		}
	}
	return true
}

// Clone returns a tensor with the same shape and data but a fresh handle
// ID. Used when a kernel wants to hand back "the same values" under a new
// handle (e.g. Normalize of a zero vector).
func (t *Tensor) Clone(newID uint64) *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{id: newID, shape: t.shape.Clone(), data: data}
}
