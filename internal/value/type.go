package value

import "fmt"

// Type is the declared schema type of a field. It parallels Kind but the
// shape variants carry fixed dimensions that inserted values must match.
type Type struct {
	Kind Kind
	// Dim is the fixed vector length, valid when Kind == KindVector.
	Dim int
	// Rows, Cols are the fixed matrix dimensions, valid when Kind == KindMatrix.
	Rows, Cols int
	// Shape is the fixed tensor shape, valid when Kind == KindTensor.
	Shape []int
}

func TypeInt() Type    { return Type{Kind: KindInt} }
func TypeFloat() Type  { return Type{Kind: KindFloat} }
func TypeBool() Type   { return Type{Kind: KindBool} }
func TypeString() Type { return Type{Kind: KindString} }

func TypeVector(dim int) Type { return Type{Kind: KindVector, Dim: dim} }

func TypeMatrix(rows, cols int) Type { return Type{Kind: KindMatrix, Rows: rows, Cols: cols} }

func TypeTensor(shape []int) Type {
	s := make([]int, len(shape))
	copy(s, shape)
	return Type{Kind: KindTensor, Shape: s}
}

func (t Type) String() string {
	switch t.Kind {
	case KindVector:
		return fmt.Sprintf("Vector(%d)", t.Dim)
	case KindMatrix:
		return fmt.Sprintf("Matrix(%d,%d)", t.Rows, t.Cols)
	case KindTensor:
		return fmt.Sprintf("Tensor(%v)", t.Shape)
	default:
		return t.Kind.String()
	}
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TypeOf returns the declared Type that exactly matches v's runtime shape.
// For Null it returns the zero Type (callers needing the declared schema
// type for a Null cell must consult the schema, not the value).
func TypeOf(v Value) Type {
	switch v.kind {
	case KindInt:
		return TypeInt()
	case KindFloat:
		return TypeFloat()
	case KindBool:
		return TypeBool()
	case KindString:
		return TypeString()
	case KindVector:
		return TypeVector(v.t.Shape()[0])
	case KindMatrix:
		return TypeMatrix(v.t.Shape()[0], v.t.Shape()[1])
	case KindTensor:
		return TypeTensor(v.t.Shape())
	default:
		return Type{}
	}
}

// Assignable reports whether v may be stored in a field declared as want:
// either v's tag matches want exactly (including matching fixed
// dimensions for the shape variants), or v is an Int being promoted into
// a Float field.
func Assignable(v Value, want Type) bool {
	if v.kind == KindNull {
		return true
	}
	if v.kind == KindInt && want.Kind == KindFloat {
		return true
	}
	if v.kind != want.Kind {
		return false
	}
	switch want.Kind {
	case KindVector:
		return v.t.Shape()[0] == want.Dim
	case KindMatrix:
		return v.t.Shape()[0] == want.Rows && v.t.Shape()[1] == want.Cols
	case KindTensor:
		return shapeEqual(v.t.Shape(), want.Shape)
	default:
		return true
	}
}
