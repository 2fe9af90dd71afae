package plan_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linal/internal/eval"
	"linal/internal/index"
	"linal/internal/plan"
	"linal/internal/value"
)

func TestConstantFoldingViaOptimize(t *testing.T) {
	root := &plan.Filter{
		Input: &plan.Scan{Dataset: "people"},
		Pred: &eval.Binary{
			Op:   eval.OpEq,
			Left: &eval.ColumnRef{Name: "id"},
			Right: &eval.Binary{
				Op:    eval.OpAdd,
				Left:  &eval.Literal{Value: value.Int(1)},
				Right: &eval.Literal{Value: value.Int(2)},
			},
		},
	}
	out := plan.Optimize(root, plan.AvailableIndexes{})
	idxScan, ok := out.(*plan.IndexScan)
	require.False(t, ok, "no index available, should remain a Filter")
	_ = idxScan
	f, ok := out.(*plan.Filter)
	require.True(t, ok)
	b := f.Pred.(*eval.Binary)
	lit, ok := b.Right.(*eval.Literal)
	require.True(t, ok, "constant subexpression should have folded to a literal")
	assert.Equal(t, int64(3), lit.Value.Int64())
}

func TestPredicatePushdownToIndexScan(t *testing.T) {
	hashIdx := index.NewHashIndex("idx_id", "id", 0)
	root := &plan.Filter{
		Input: &plan.Scan{Dataset: "people"},
		Pred: &eval.Binary{
			Op:    eval.OpEq,
			Left:  &eval.ColumnRef{Name: "id"},
			Right: &eval.Literal{Value: value.Int(5)},
		},
	}
	out := plan.Optimize(root, plan.AvailableIndexes{ByColumn: map[string][]index.Index{"id": {hashIdx}}})
	scan, ok := out.(*plan.IndexScan)
	require.True(t, ok)
	assert.Equal(t, "idx_id", scan.Index)
}

func TestVectorTopKPushdown(t *testing.T) {
	vecIdx := index.NewVectorIndex("idx_vec", "embedding", 0, 3, index.MetricCosine)
	queryVec := value.Null // placeholder literal value, shape irrelevant to the rewrite test
	root := &plan.Limit{
		N: 5,
		Input: &plan.Order{
			Keys: []plan.SortKey{{
				Dir: plan.Desc,
				Expr: &eval.Call{Name: "cosine", Args: []eval.Expr{
					&eval.ColumnRef{Name: "embedding"},
					&eval.Literal{Value: queryVec},
				}},
			}},
			Input: &plan.Scan{Dataset: "items"},
		},
	}
	out := plan.Optimize(root, plan.AvailableIndexes{ByColumn: map[string][]index.Index{"embedding": {vecIdx}}})
	vs, ok := out.(*plan.VectorScan)
	require.True(t, ok)
	assert.Equal(t, 5, vs.K)
	assert.Equal(t, "idx_vec", vs.Index)
}

func TestExplainRendersChosenAccessPath(t *testing.T) {
	root := &plan.IndexScan{Dataset: "people", Index: "idx_id", Column: "id"}
	out := plan.Explain(root, nil)
	assert.True(t, strings.Contains(out, "IndexScan"))
}
