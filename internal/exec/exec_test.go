package exec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linal/internal/dataset"
	"linal/internal/eval"
	"linal/internal/exec"
	"linal/internal/plan"
	"linal/internal/schema"
	"linal/internal/value"
)

func newSalesStore(t *testing.T) *dataset.Store {
	store := dataset.NewStore()
	s := schema.Schema{Fields: []schema.Field{
		{Name: "region", Type: value.TypeString()},
		{Name: "amount", Type: value.TypeFloat()},
	}}
	ds, err := store.Create("sales", s)
	require.NoError(t, err)
	rows := [][2]interface{}{
		{"east", 10.0}, {"west", 5.0}, {"east", 20.0}, {"west", 15.0}, {"east", 1.0},
	}
	for _, r := range rows {
		_, err := ds.InsertRow([]value.Value{value.String(r[0].(string)), value.Float(r[1].(float64))})
		require.NoError(t, err)
	}
	return store
}

func drain(t *testing.T, op exec.Operator) []exec.Row {
	require.NoError(t, op.Open())
	defer op.Close()
	var out []exec.Row
	for {
		row, ok, err := op.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, row)
	}
	return out
}

func TestScanReturnsAllRows(t *testing.T) {
	store := newSalesStore(t)
	ctx := exec.NewContext(store)
	rows := drain(t, exec.NewScan(ctx, "sales", nil))
	assert.Len(t, rows, 5)
}

func TestFilterKeepsMatchingRows(t *testing.T) {
	store := newSalesStore(t)
	ctx := exec.NewContext(store)
	scan := exec.NewScan(ctx, "sales", []string{"region", "amount"})
	pred := &eval.Binary{Op: eval.OpEq, Left: &eval.ColumnRef{Name: "region"}, Right: &eval.Literal{Value: value.String("east")}}
	f := exec.NewFilter(ctx, scan, []string{"region", "amount"}, pred)
	rows := drain(t, f)
	assert.Len(t, rows, 3)
}

func TestFilterExcludesRowsWithNullPredicate(t *testing.T) {
	store := dataset.NewStore()
	s := schema.Schema{Fields: []schema.Field{
		{Name: "region", Type: value.TypeString()},
		{Name: "active", Type: value.TypeBool(), Nullable: true},
	}}
	ds, err := store.Create("flags", s)
	require.NoError(t, err)
	_, err = ds.InsertRow([]value.Value{value.String("east"), value.Bool(true)})
	require.NoError(t, err)
	_, err = ds.InsertRow([]value.Value{value.String("west"), value.Null})
	require.NoError(t, err)

	ctx := exec.NewContext(store)
	scan := exec.NewScan(ctx, "flags", []string{"region", "active"})
	pred := &eval.ColumnRef{Name: "active"}
	f := exec.NewFilter(ctx, scan, []string{"region", "active"}, pred)
	rows := drain(t, f)
	require.Len(t, rows, 1)
	assert.Equal(t, "east", rows[0].Values[0].Str())
}

func TestFilterExcludesNullFromInequalityAndEquality(t *testing.T) {
	store := dataset.NewStore()
	s := schema.Schema{Fields: []schema.Field{
		{Name: "region", Type: value.TypeString()},
		{Name: "amount", Type: value.TypeFloat(), Nullable: true},
	}}
	ds, err := store.Create("flags", s)
	require.NoError(t, err)
	_, err = ds.InsertRow([]value.Value{value.String("east"), value.Float(10)})
	require.NoError(t, err)
	_, err = ds.InsertRow([]value.Value{value.String("west"), value.Null})
	require.NoError(t, err)

	ctx := exec.NewContext(store)

	// WHERE amount != 5: the Null row must be excluded, not included by a
	// stray value.Equal(Null, 5) == false -> != true shortcut.
	scan := exec.NewScan(ctx, "flags", []string{"region", "amount"})
	pred := &eval.Binary{Op: eval.OpNeq, Left: &eval.ColumnRef{Name: "amount"}, Right: &eval.Literal{Value: value.Float(5)}}
	rows := drain(t, exec.NewFilter(ctx, scan, []string{"region", "amount"}, pred))
	require.Len(t, rows, 1)
	assert.Equal(t, "east", rows[0].Values[0].Str())

	// WHERE amount = amount: Null = Null must exclude the row too.
	scan2 := exec.NewScan(ctx, "flags", []string{"region", "amount"})
	selfEq := &eval.Binary{Op: eval.OpEq, Left: &eval.ColumnRef{Name: "amount"}, Right: &eval.ColumnRef{Name: "amount"}}
	rows2 := drain(t, exec.NewFilter(ctx, scan2, []string{"region", "amount"}, selfEq))
	require.Len(t, rows2, 1)
	assert.Equal(t, "east", rows2[0].Values[0].Str())
}

func TestScanResolvesLazyColumnBeforeMaterialize(t *testing.T) {
	store := newSalesStore(t)
	ds, err := store.GetByName("sales")
	require.NoError(t, err)
	expr := &eval.Binary{Op: eval.OpMul, Left: &eval.ColumnRef{Name: "amount"}, Right: &eval.Literal{Value: value.Int(2)}}
	require.NoError(t, ds.AddColumn(schema.Field{Name: "doubled", Type: value.TypeFloat()}, expr, value.Null, true))

	ctx := exec.NewContext(store)
	scan := exec.NewScan(ctx, "sales", []string{"amount", "doubled"})
	rows := drain(t, scan)
	require.Len(t, rows, 5)
	assert.Equal(t, rows[0].Values[0].Float64()*2, rows[0].Values[1].Float64())
}

func TestProjectEvaluatesExpressions(t *testing.T) {
	store := newSalesStore(t)
	ctx := exec.NewContext(store)
	scan := exec.NewScan(ctx, "sales", []string{"region", "amount"})
	doubled := &eval.Binary{Op: eval.OpMul, Left: &eval.ColumnRef{Name: "amount"}, Right: &eval.Literal{Value: value.Int(2)}}
	p := exec.NewProject(ctx, scan, []string{"region", "amount"}, []string{"region", "doubled"}, []eval.Expr{&eval.ColumnRef{Name: "region"}, doubled})
	rows := drain(t, p)
	require.Len(t, rows, 5)
	assert.Equal(t, 20.0, rows[0].Values[1].Float64())
}

func TestOrderAndLimit(t *testing.T) {
	store := newSalesStore(t)
	ctx := exec.NewContext(store)
	scan := exec.NewScan(ctx, "sales", []string{"region", "amount"})
	order := exec.NewOrder(ctx, scan, []string{"region", "amount"}, []plan.SortKey{
		{Expr: &eval.ColumnRef{Name: "amount"}, Dir: plan.Desc},
	})
	limit := exec.NewLimit(order, 2)
	rows := drain(t, limit)
	require.Len(t, rows, 2)
	assert.Equal(t, 20.0, rows[0].Values[1].Float64())
	assert.Equal(t, 15.0, rows[1].Values[1].Float64())
}

func TestGroupBySumAndCount(t *testing.T) {
	store := newSalesStore(t)
	ctx := exec.NewContext(store)
	scan := exec.NewScan(ctx, "sales", []string{"region", "amount"})
	gb := &plan.GroupBy{
		Keys:     []eval.Expr{&eval.ColumnRef{Name: "region"}},
		KeyNames: []string{"region"},
		Aggs: []plan.Aggregate{
			{Kind: plan.AggSum, Expr: &eval.ColumnRef{Name: "amount"}, ResultName: "total"},
			{Kind: plan.AggCount, ResultName: "n"},
		},
	}
	op := exec.NewGroupBy(ctx, scan, []string{"region", "amount"}, gb)
	rows := drain(t, op)
	require.Len(t, rows, 2)

	totals := map[string]float64{}
	counts := map[string]int64{}
	for _, r := range rows {
		totals[r.Values[0].Str()] = r.Values[1].Float64()
		counts[r.Values[0].Str()] = r.Values[2].Int64()
	}
	assert.Equal(t, 31.0, totals["east"])
	assert.Equal(t, 20.0, totals["west"])
	assert.Equal(t, int64(3), counts["east"])
	assert.Equal(t, int64(2), counts["west"])
}

func TestGroupByHavingFiltersGroups(t *testing.T) {
	store := newSalesStore(t)
	ctx := exec.NewContext(store)
	scan := exec.NewScan(ctx, "sales", []string{"region", "amount"})
	gb := &plan.GroupBy{
		Keys:     []eval.Expr{&eval.ColumnRef{Name: "region"}},
		KeyNames: []string{"region"},
		Aggs: []plan.Aggregate{
			{Kind: plan.AggSum, Expr: &eval.ColumnRef{Name: "amount"}, ResultName: "total"},
		},
	}
	op := exec.NewGroupBy(ctx, scan, []string{"region", "amount"}, gb)
	having := &eval.Binary{Op: eval.OpGt, Left: &eval.ColumnRef{Name: "total"}, Right: &eval.Literal{Value: value.Float(25)}}
	filtered := exec.NewFilter(ctx, op, op.Names(), having)
	rows := drain(t, filtered)
	require.Len(t, rows, 1)
	assert.Equal(t, "east", rows[0].Values[0].Str())
}

func TestIndexScanEquality(t *testing.T) {
	store := newSalesStore(t)
	ds, err := store.GetByName("sales")
	require.NoError(t, err)
	require.NoError(t, ds.CreateHashIndex("idx_region", "region"))

	ctx := exec.NewContext(store)
	op := exec.NewIndexScan(ctx, "sales", "idx_region", &eval.Literal{Value: value.String("west")}, []string{"region", "amount"})
	rows := drain(t, op)
	assert.Len(t, rows, 2)
}

func TestDeadlineExpiryCancelsExecution(t *testing.T) {
	store := newSalesStore(t)
	ctx := exec.NewContext(store)
	past := time.Now().Add(-time.Hour)
	ctx.SetDeadline(&past)
	scan := exec.NewScan(ctx, "sales", nil)
	require.NoError(t, scan.Open())
	_, _, err := scan.Next()
	assert.Error(t, err)
}
