package value

import (
	"math"

	"linal/internal/errs"
)

// AsFloat coerces an Int or Float value to float64, failing with TypeError
// for any other kind.
func AsFloat(v Value) (float64, error) {
	switch v.kind {
	case KindInt:
		return float64(v.i), nil
	case KindFloat:
		return v.f, nil
	default:
		return 0, &errs.TypeError{Op: "as_float", Types: []string{v.kind.String()}}
	}
}

// AsInt coerces an Int value to int64, or a Float value that holds an
// exact integer. Any other kind, or a non-integral Float, fails with
// TypeError.
func AsInt(v Value) (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindFloat:
		if v.f == math.Trunc(v.f) {
			return int64(v.f), nil
		}
		return 0, &errs.TypeError{Op: "as_int", Types: []string{"Float (non-integral)"}}
	default:
		return 0, &errs.TypeError{Op: "as_int", Types: []string{v.kind.String()}}
	}
}

// ordinal assigns Null the lowest rank so it sorts and compares as least.
func (v Value) ordinal() int {
	if v.kind == KindNull {
		return 0
	}
	return 1
}

// Compare defines the total ordering used by ORDER BY and comparison
// operators: Null is least; Int and Float compare numerically with
// Int->Float promotion; Bool compares false < true; String compares
// lexicographically; equal kinds of the same tensor shape compare only
// for equality (ok=false for <, > on tensor-shaped values). Any other
// pairing (e.g. String vs Bool) is not comparable.
func Compare(a, b Value) (cmp int, ok bool) {
	if a.kind == KindNull || b.kind == KindNull {
		ao, bo := a.ordinal(), b.ordinal()
		switch {
		case ao == bo:
			return 0, true
		case ao < bo:
			return -1, true
		default:
			return 1, true
		}
	}
	if isNumeric(a.kind) && isNumeric(b.kind) {
		af, _ := AsFloat(a)
		bf, _ := AsFloat(b)
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindBool:
		if a.b == b.b {
			return 0, true
		}
		if !a.b {
			return -1, true
		}
		return 1, true
	case KindString:
		switch {
		case a.s < b.s:
			return -1, true
		case a.s > b.s:
			return 1, true
		default:
			return 0, true
		}
	case KindVector, KindMatrix, KindTensor:
		if Equal(a, b) {
			return 0, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindFloat }

// Equal reports structural equality: for tensor-shaped values, shape and
// elementwise equality; otherwise tag-and-payload equality, with Int/Float
// cross-kind numeric equality.
func Equal(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return a.kind == b.kind
	}
	if isNumeric(a.kind) && isNumeric(b.kind) {
		af, _ := AsFloat(a)
		bf, _ := AsFloat(b)
		return af == bf
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindVector, KindMatrix, KindTensor:
		return a.t.Equal(b.t)
	default:
		return false
	}
}
