package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linal/internal/command"
	"linal/internal/config"
	"linal/internal/engine"
	"linal/internal/eval"
	"linal/internal/schema"
	"linal/internal/storage/memadapter"
	"linal/internal/value"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New(config.Default(), memadapter.New())
	require.NoError(t, e.Bootstrap(context.Background()))
	require.NoError(t, e.CreateDatabase("default"))
	require.NoError(t, e.UseDatabase("default"))
	return e
}

func TestCreateDatabaseAndUse(t *testing.T) {
	e := engine.New(config.Default(), memadapter.New())
	require.NoError(t, e.Bootstrap(context.Background()))

	out, err := e.Execute(&command.CreateDatabase{Name: "analytics"})
	require.NoError(t, err)
	assert.Equal(t, engine.OutputOK, out.Kind)

	_, err = e.Execute(&command.UseDatabase{Name: "analytics"})
	require.NoError(t, err)

	out, err = e.Execute(&command.ShowDatabases{})
	require.NoError(t, err)
	assert.Equal(t, engine.OutputList, out.Kind)
}

func TestDefineTensorAndShowShape(t *testing.T) {
	e := newTestEngine(t)

	out, err := e.Execute(&command.DefineTensor{Name: "v", Shape: []int{3}, Data: []float64{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, engine.OutputVector, out.Kind)

	out, err = e.Execute(&command.ShowShape{Tensor: "v"})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, out.Payload)
}

func TestLetExprBindsComputedResult(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Execute(&command.DefineTensor{Name: "v", Shape: []int{3}, Data: []float64{1, 2, 3}})
	require.NoError(t, err)

	out, err := e.Execute(&command.LetExpr{
		Name: "doubled",
		Expr: &eval.Binary{Op: eval.OpMul, Left: &eval.ColumnRef{Name: "v"}, Right: &eval.Literal{Value: value.Float(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, engine.OutputVector, out.Kind)
}

func TestCreateDatasetAndInsertRow(t *testing.T) {
	e := newTestEngine(t)

	s := schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: value.TypeInt()},
		{Name: "label", Type: value.TypeString()},
	}}
	out, err := e.Execute(&command.CreateDataset{Name: "items", Schema: s})
	require.NoError(t, err)
	assert.Equal(t, engine.OutputOK, out.Kind)

	_, err = e.Execute(&command.InsertRow{Dataset: "items", Values: []value.Value{value.Int(1), value.String("a")}})
	require.NoError(t, err)

	out, err = e.Execute(&command.ShowAll{Dataset: "items"})
	require.NoError(t, err)
	rs, ok := out.Payload.(engine.ResultSet)
	require.True(t, ok)
	assert.Len(t, rs.Rows, 1)
}

func TestCreateDatasetWithSeedRows(t *testing.T) {
	e := newTestEngine(t)

	s := schema.Schema{Fields: []schema.Field{{Name: "id", Type: value.TypeInt()}}}
	rows := [][]value.Value{{value.Int(1)}, {value.Int(2)}}
	out, err := e.Execute(&command.CreateDataset{Name: "seeded", Schema: s, Rows: rows})
	require.NoError(t, err)
	assert.Contains(t, out.Message, "2 row(s)")
}

func TestUnknownDatabaseReturnsError(t *testing.T) {
	e := engine.New(config.Default(), memadapter.New())
	require.NoError(t, e.Bootstrap(context.Background()))

	_, err := e.Execute(&command.DefineTensor{Name: "v", Shape: []int{2}, Data: []float64{1, 2}})
	require.Error(t, err)
}

func TestSaveAndLoadDatasetRoundTripsThroughAdapter(t *testing.T) {
	e := newTestEngine(t)

	s := schema.Schema{Fields: []schema.Field{{Name: "id", Type: value.TypeInt()}}}
	_, err := e.Execute(&command.CreateDataset{Name: "persisted", Schema: s})
	require.NoError(t, err)
	_, err = e.Execute(&command.InsertRow{Dataset: "persisted", Values: []value.Value{value.Int(42)}})
	require.NoError(t, err)

	_, err = e.Execute(&command.SaveDataset{Dataset: "persisted"})
	require.NoError(t, err)

	_, err = e.Execute(&command.DropDatabase{Name: "default"})
	require.NoError(t, err)
	_, err = e.Execute(&command.CreateDatabase{Name: "default"})
	require.NoError(t, err)
	_, err = e.Execute(&command.UseDatabase{Name: "default"})
	require.NoError(t, err)

	out, err := e.Execute(&command.LoadDataset{Dataset: "persisted"})
	require.NoError(t, err)
	assert.Equal(t, engine.OutputOK, out.Kind)

	out, err = e.Execute(&command.ShowAll{Dataset: "persisted"})
	require.NoError(t, err)
	rs := out.Payload.(engine.ResultSet)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, int64(42), rs.Rows[0][0].Int64())
}
