package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linal/internal/dataset"
	"linal/internal/errs"
	"linal/internal/eval"
	"linal/internal/index"
	"linal/internal/schema"
	"linal/internal/tensor"
	"linal/internal/value"
)

func newPeopleDataset() *dataset.Dataset {
	s := schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: value.TypeInt()},
		{Name: "name", Type: value.TypeString()},
		{Name: "score", Type: value.TypeFloat(), Nullable: true},
	}}
	return dataset.New("people", s)
}

func TestInsertRowValidatesSchema(t *testing.T) {
	d := newPeopleDataset()
	_, err := d.InsertRow([]value.Value{value.Int(1), value.String("alice"), value.Float(9.5)})
	require.NoError(t, err)
	assert.Equal(t, 1, d.RowsLen())

	_, err = d.InsertRow([]value.Value{value.Int(2), value.Bool(true), value.Null})
	assert.Error(t, err)
	assert.Equal(t, 1, d.RowsLen())
}

func TestInsertRowIntPromotesToFloatField(t *testing.T) {
	d := newPeopleDataset()
	_, err := d.InsertRow([]value.Value{value.Int(1), value.String("alice"), value.Int(9)})
	require.NoError(t, err)
	assert.Equal(t, value.KindFloat, d.Rows[0].Values[2].Kind())
}

func TestInsertRowRejectsInvalidRowWithIndexAttached(t *testing.T) {
	d := newPeopleDataset()
	require.NoError(t, d.CreateHashIndex("idx_id", "id"))
	_, err := d.InsertRow([]value.Value{value.Int(1), value.String("alice"), value.Null})
	require.NoError(t, err)

	// A second insert with a bad row (wrong column count) should fail
	// schema validation before ever reaching index maintenance, leaving
	// both the dataset and the index untouched.
	_, err = d.InsertRow([]value.Value{value.Int(2)})
	require.Error(t, err)
	assert.Equal(t, 1, d.RowsLen())
}

func TestAddColumnWithDefault(t *testing.T) {
	d := newPeopleDataset()
	_, err := d.InsertRow([]value.Value{value.Int(1), value.String("alice"), value.Null})
	require.NoError(t, err)

	err = d.AddColumn(schema.Field{Name: "active", Type: value.TypeBool()}, nil, value.Bool(true), false)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), d.Rows[0].Values[3])
}

func TestAddColumnMaterializedExpression(t *testing.T) {
	d := newPeopleDataset()
	_, err := d.InsertRow([]value.Value{value.Int(1), value.String("alice"), value.Float(10)})
	require.NoError(t, err)

	expr := &eval.Binary{Op: eval.OpMul, Left: &eval.ColumnRef{Name: "score"}, Right: &eval.Literal{Value: value.Int(2)}}
	err = d.AddColumn(schema.Field{Name: "doubled", Type: value.TypeFloat()}, expr, value.Null, false)
	require.NoError(t, err)
	assert.Equal(t, 20.0, d.Rows[0].Values[3].Float64())
}

func TestAddColumnLazyThenMaterialize(t *testing.T) {
	d := newPeopleDataset()
	_, err := d.InsertRow([]value.Value{value.Int(1), value.String("alice"), value.Float(10)})
	require.NoError(t, err)

	expr := &eval.Binary{Op: eval.OpMul, Left: &eval.ColumnRef{Name: "score"}, Right: &eval.Literal{Value: value.Int(2)}}
	err = d.AddColumn(schema.Field{Name: "doubled", Type: value.TypeFloat()}, expr, value.Null, true)
	require.NoError(t, err)
	assert.True(t, d.Rows[0].Values[3].IsNull())

	require.NoError(t, d.Materialize())
	assert.Equal(t, 20.0, d.Rows[0].Values[3].Float64())
}

func TestLazyColumnReadsThroughProjectionBeforeMaterialize(t *testing.T) {
	d := newPeopleDataset()
	_, err := d.InsertRow([]value.Value{value.Int(1), value.String("alice"), value.Float(10)})
	require.NoError(t, err)

	expr := &eval.Binary{Op: eval.OpMul, Left: &eval.ColumnRef{Name: "score"}, Right: &eval.Literal{Value: value.Int(2)}}
	err = d.AddColumn(schema.Field{Name: "doubled", Type: value.TypeFloat()}, expr, value.Null, true)
	require.NoError(t, err)

	rows, err := d.Projection([]string{"doubled"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 20.0, rows[0].Values[0].Float64())

	// The stored row itself still carries the placeholder until Materialize
	// runs; only the read path resolves it on demand.
	assert.True(t, d.Rows[0].Values[3].IsNull())
}

func TestDropColumnFailsWhenIndexed(t *testing.T) {
	d := newPeopleDataset()
	require.NoError(t, d.CreateHashIndex("idx_id", "id"))
	err := d.DropColumn("id")
	assert.Error(t, err)

	require.NoError(t, d.DropIndex("idx_id"))
	err = d.DropColumn("id")
	assert.NoError(t, err)
}

func TestRenameColumnCollision(t *testing.T) {
	d := newPeopleDataset()
	err := d.RenameColumn("name", "id")
	assert.Error(t, err)

	err = d.RenameColumn("name", "full_name")
	require.NoError(t, err)
	_, ok := d.Schema.Field("full_name")
	assert.True(t, ok)
}

func TestProjection(t *testing.T) {
	d := newPeopleDataset()
	_, err := d.InsertRow([]value.Value{value.Int(1), value.String("alice"), value.Float(5)})
	require.NoError(t, err)

	rows, err := d.Projection([]string{"name", "id"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].Values[0].Str())
	assert.Equal(t, int64(1), rows[0].Values[1].Int64())
}

func TestColumnStatsCachingAndInvalidation(t *testing.T) {
	d := newPeopleDataset()
	_, err := d.InsertRow([]value.Value{value.Int(3), value.String("a"), value.Null})
	require.NoError(t, err)
	_, err = d.InsertRow([]value.Value{value.Int(1), value.String("b"), value.Null})
	require.NoError(t, err)

	stats, err := d.ColumnStats("id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Min.Int64())
	assert.Equal(t, int64(3), stats.Max.Int64())

	_, err = d.InsertRow([]value.Value{value.Int(10), value.String("c"), value.Null})
	require.NoError(t, err)
	stats, err = d.ColumnStats("id")
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.Max.Int64())
}

func TestVectorIndexRequiresVectorColumn(t *testing.T) {
	d := newPeopleDataset()
	err := d.CreateVectorIndex("idx_vec", "score", index.MetricCosine)
	var typeErr *errs.TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestVectorIndexOnVectorColumn(t *testing.T) {
	s := schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: value.TypeInt()},
		{Name: "embedding", Type: value.TypeVector(2)},
	}}
	d := dataset.New("items", s)
	v1, _ := tensor.New(tensor.NextID(), tensor.Shape{2}, []float64{1, 0})
	_, err := d.InsertRow([]value.Value{value.Int(1), value.Vector(v1)})
	require.NoError(t, err)

	require.NoError(t, d.CreateVectorIndex("idx_vec", "embedding", index.MetricCosine))
	descs := d.ListIndexes()
	require.Len(t, descs, 1)
	assert.Equal(t, "vector", descs[0].Kind)
	assert.Equal(t, "cosine", descs[0].Metric)
}
