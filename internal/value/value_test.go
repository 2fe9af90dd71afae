package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linal/internal/tensor"
	"linal/internal/value"
)

func TestAsFloatPromotesInt(t *testing.T) {
	f, err := value.AsFloat(value.Int(3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)
}

func TestAsIntRejectsNonIntegralFloat(t *testing.T) {
	_, err := value.AsInt(value.Float(3.5))
	assert.Error(t, err)
}

func TestCompareNullIsLeast(t *testing.T) {
	cmp, ok := value.Compare(value.Null, value.Int(1))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)
}

func TestCompareNumericPromotion(t *testing.T) {
	cmp, ok := value.Compare(value.Int(2), value.Float(2.0))
	require.True(t, ok)
	assert.Equal(t, 0, cmp)

	cmp, ok = value.Compare(value.Int(1), value.Float(1.5))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)
}

func TestCompareIncomparableKinds(t *testing.T) {
	_, ok := value.Compare(value.String("a"), value.Bool(true))
	assert.False(t, ok)
}

func TestEqualTensorShapeAndElementwise(t *testing.T) {
	t1, err := tensor.New(tensor.NextID(), tensor.Shape{2}, []float64{1, 2})
	require.NoError(t, err)
	t2, err := tensor.New(tensor.NextID(), tensor.Shape{2}, []float64{1, 2})
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Vector(t1), value.Vector(t2)))
}

func TestAssignableExactAndPromotion(t *testing.T) {
	assert.True(t, value.Assignable(value.Int(1), value.TypeFloat()))
	assert.True(t, value.Assignable(value.Null, value.TypeString()))
	assert.False(t, value.Assignable(value.Float(1.5), value.TypeInt()))
}

func TestAssignableVectorDimension(t *testing.T) {
	vt, err := tensor.New(tensor.NextID(), tensor.Shape{3}, []float64{1, 2, 3})
	require.NoError(t, err)
	v := value.Vector(vt)
	assert.True(t, value.Assignable(v, value.TypeVector(3)))
	assert.False(t, value.Assignable(v, value.TypeVector(4)))
}
