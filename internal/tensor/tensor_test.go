package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linal/internal/errs"
	"linal/internal/tensor"
)

func vec(t *testing.T, vals ...float64) *tensor.Tensor {
	ts, err := tensor.New(tensor.NextID(), tensor.Shape{len(vals)}, vals)
	require.NoError(t, err)
	return ts
}

func mat(t *testing.T, rows, cols int, vals ...float64) *tensor.Tensor {
	ts, err := tensor.New(tensor.NextID(), tensor.Shape{rows, cols}, vals)
	require.NoError(t, err)
	return ts
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	_, err := tensor.New(tensor.NextID(), tensor.Shape{2, 2}, []float64{1, 2, 3})
	var shapeErr *errs.ShapeMismatch
	require.ErrorAs(t, err, &shapeErr)
}

func TestAtAndIndexOutOfRange(t *testing.T) {
	m := mat(t, 2, 2, 1, 2, 3, 4)
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	_, err = m.At(2, 0)
	var rangeErr *errs.IndexOutOfRange
	require.ErrorAs(t, err, &rangeErr)
}

func TestBinaryStrictAdd(t *testing.T) {
	a := vec(t, 1, 2, 3)
	b := vec(t, 10, 20, 30)
	sum, err := tensor.BinaryStrict(tensor.OpAdd, a, b, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33}, sum.Data())
}

func TestBinaryStrictShapeMismatch(t *testing.T) {
	a := vec(t, 1, 2, 3)
	b := vec(t, 1, 2)
	_, err := tensor.BinaryStrict(tensor.OpAdd, a, b, tensor.NextID())
	var shapeErr *errs.ShapeMismatch
	require.ErrorAs(t, err, &shapeErr)
}

func TestBinaryRelaxedScalarBroadcast(t *testing.T) {
	scalar := tensor.Scalar(tensor.NextID(), 2)
	v := vec(t, 1, 2, 3)
	out, err := tensor.BinaryRelaxed(tensor.OpMul, scalar, v, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, out.Data())
}

func TestBinaryRelaxedPadsShorterVectorWithIdentity(t *testing.T) {
	a := vec(t, 1, 2, 3)
	b := vec(t, 10, 20)
	sum, err := tensor.BinaryRelaxed(tensor.OpAdd, a, b, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 3}, sum.Data())

	prod, err := tensor.BinaryRelaxed(tensor.OpMul, a, b, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 40, 3}, prod.Data())
}

func TestMatMul(t *testing.T) {
	a := mat(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := mat(t, 3, 2, 7, 8, 9, 10, 11, 12)
	c, err := tensor.MatMul(a, b, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, c.Shape())
	assert.Equal(t, []float64{58, 64, 139, 154}, c.Data())
}

func TestMatMulRejectsInnerDimMismatch(t *testing.T) {
	a := mat(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := mat(t, 2, 2, 1, 2, 3, 4)
	_, err := tensor.MatMul(a, b, tensor.NextID())
	var shapeErr *errs.ShapeMismatch
	require.ErrorAs(t, err, &shapeErr)
}

func TestTranspose(t *testing.T) {
	a := mat(t, 2, 3, 1, 2, 3, 4, 5, 6)
	tr, err := tensor.Transpose(a, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, tr.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.Data())
}

func TestReshapeAndFlatten(t *testing.T) {
	a := mat(t, 2, 3, 1, 2, 3, 4, 5, 6)
	r, err := tensor.Reshape(a, tensor.Shape{3, 2}, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, r.Data())

	flat, err := tensor.Flatten(a, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{6}, flat.Shape())
}

func TestReshapeRejectsElementCountMismatch(t *testing.T) {
	a := mat(t, 2, 3, 1, 2, 3, 4, 5, 6)
	_, err := tensor.Reshape(a, tensor.Shape{4, 2}, tensor.NextID())
	var shapeErr *errs.ShapeMismatch
	require.ErrorAs(t, err, &shapeErr)
}

func TestStack(t *testing.T) {
	a := vec(t, 1, 2)
	b := vec(t, 3, 4)
	s, err := tensor.Stack([]*tensor.Tensor{a, b}, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, s.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4}, s.Data())
}

func TestDotCosineL2Distance(t *testing.T) {
	a := vec(t, 1, 0)
	b := vec(t, 0, 1)

	d, err := tensor.Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	cos, err := tensor.Cosine(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cos)

	dist, err := tensor.L2Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.4142135, dist, 1e-6)
}

func TestCosineZeroNormReturnsZeroNotError(t *testing.T) {
	zero := vec(t, 0, 0, 0)
	other := vec(t, 1, 2, 3)
	cos, err := tensor.Cosine(zero, other)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cos)
}

func TestNormalizeZeroVectorReturnsUnchanged(t *testing.T) {
	zero := vec(t, 0, 0, 0)
	n, err := tensor.Normalize(zero, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, n.Data())
}

func TestNormalizeUnitNorm(t *testing.T) {
	v := vec(t, 3, 4)
	n, err := tensor.Normalize(v, tensor.NextID())
	require.NoError(t, err)
	assert.InDelta(t, 0.6, n.Data()[0], 1e-9)
	assert.InDelta(t, 0.8, n.Data()[1], 1e-9)
}

func TestIndexLiteralAndWildcard(t *testing.T) {
	m := mat(t, 2, 3, 1, 2, 3, 4, 5, 6)

	row, err := tensor.Index(m, []tensor.IndexSpec{tensor.Lit(1), tensor.Wildcard()}, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3}, row.Shape())
	assert.Equal(t, []float64{4, 5, 6}, row.Data())

	col, err := tensor.Index(m, []tensor.IndexSpec{tensor.Wildcard(), tensor.Lit(2)}, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2}, col.Shape())
	assert.Equal(t, []float64{3, 6}, col.Data())

	elem, err := tensor.Index(m, []tensor.IndexSpec{tensor.Lit(1), tensor.Lit(2)}, tensor.NextID())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{}, elem.Shape())
	assert.Equal(t, []float64{6}, elem.Data())
}

func TestIndexOutOfRange(t *testing.T) {
	m := mat(t, 2, 3, 1, 2, 3, 4, 5, 6)
	_, err := tensor.Index(m, []tensor.IndexSpec{tensor.Lit(5), tensor.Wildcard()}, tensor.NextID())
	var rangeErr *errs.IndexOutOfRange
	require.ErrorAs(t, err, &rangeErr)
}
