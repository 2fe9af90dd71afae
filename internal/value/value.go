// Package value implements LINAL's tagged-union cell type and the typed
// schema contract rows are validated against.
package value

import (
	"fmt"

	"linal/internal/tensor"
)

// Kind is the runtime tag of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindVector
	KindMatrix
	KindTensor
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindVector:
		return "Vector"
	case KindMatrix:
		return "Matrix"
	case KindTensor:
		return "Tensor"
	default:
		return "Unknown"
	}
}

// Value is LINAL's runtime cell type: a tagged union over scalars, strings,
// and the three tensor-shaped variants (Vector/Matrix/Tensor all carry a
// *tensor.Tensor handle; the tag records which schema shape it must obey).
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	t    *tensor.Tensor
}

// Null is the single null value.
var Null = Value{kind: KindNull}

// Int constructs an Int value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float constructs a Float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool constructs a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String constructs a String value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Vector constructs a Vector value from a rank-1 tensor handle. Panics if
// t is not rank 1; callers are expected to only route rank-1 tensors here.
func Vector(t *tensor.Tensor) Value {
	if t.Rank() != 1 {
		panic("value.Vector: tensor is not rank-1")
	}
	return Value{kind: KindVector, t: t}
}

// Matrix constructs a Matrix value from a rank-2 tensor handle.
func Matrix(t *tensor.Tensor) Value {
	if t.Rank() != 2 {
		panic("value.Matrix: tensor is not rank-2")
	}
	return Value{kind: KindMatrix, t: t}
}

// Tensor constructs a general Tensor value of any rank.
func Tensor(t *tensor.Tensor) Value {
	return Value{kind: KindTensor, t: t}
}

// Kind returns the value's runtime tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int64 returns the raw Int payload. Only meaningful when Kind() == KindInt.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the raw Float payload. Only meaningful when Kind() == KindFloat.
func (v Value) Float64() float64 { return v.f }

// BoolVal returns the raw Bool payload. Only meaningful when Kind() == KindBool.
func (v Value) BoolVal() bool { return v.b }

// Str returns the raw String payload. Only meaningful when Kind() == KindString.
func (v Value) Str() string { return v.s }

// TensorHandle returns the underlying tensor handle for Vector/Matrix/Tensor
// values, or nil otherwise.
func (v Value) TensorHandle() *tensor.Tensor { return v.t }

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindString:
		return v.s
	case KindVector, KindMatrix, KindTensor:
		return fmt.Sprintf("%s%v", v.kind, v.t.Shape())
	default:
		return "<invalid>"
	}
}
