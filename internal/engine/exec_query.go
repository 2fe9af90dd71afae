package engine

import (
	"fmt"

	"linal/internal/command"
	"linal/internal/errs"
	"linal/internal/exec"
	"linal/internal/index"
	"linal/internal/plan"
	"linal/internal/value"
)

// ResultSet is a query's output shape: a column list plus its rows.
type ResultSet struct {
	Columns []string
	Rows    [][]value.Value
}

func (e *Engine) executeSelect(di *DatabaseInstance, c *command.Select) (DslOutput, error) {
	dsName, err := leafDataset(c.Root)
	if err != nil {
		return DslOutput{}, err
	}
	ds, err := di.Store.GetByName(dsName)
	if err != nil {
		return DslOutput{}, err
	}

	available := plan.AvailableIndexes{ByColumn: map[string][]index.Index{}}
	for _, idx := range ds.Indexes() {
		for _, col := range idx.TargetColumns() {
			available.ByColumn[col] = append(available.ByColumn[col], idx)
		}
	}
	physical := plan.Optimize(c.Root, available)

	ctx := exec.NewContext(di.Store)
	op, names, err := buildOperator(ctx, physical)
	if err != nil {
		return DslOutput{}, err
	}

	if err := op.Open(); err != nil {
		return DslOutput{}, err
	}
	defer op.Close()

	var rows [][]value.Value
	for {
		row, ok, err := op.Next()
		if err != nil {
			return DslOutput{}, err
		}
		if !ok {
			break
		}
		rows = append(rows, row.Values)
	}

	rs := ResultSet{Columns: names, Rows: rows}
	return DslOutput{Kind: OutputList, Payload: rs, Message: fmt.Sprintf("%d row(s)", len(rows))}, nil
}

// buildOperator compiles a physical plan tree into a live executor
// pipeline, tracking each level's output column names since FilterOp and
// ProjectOp need the names of the rows flowing into them.
func buildOperator(ctx *exec.Context, node plan.Node) (exec.Operator, []string, error) {
	switch n := node.(type) {
	case *plan.Scan:
		names, err := resolveColumns(ctx, n.Dataset, n.Columns)
		if err != nil {
			return nil, nil, err
		}
		return exec.NewScan(ctx, n.Dataset, n.Columns), names, nil

	case *plan.IndexScan:
		names, err := resolveColumns(ctx, n.Dataset, n.Columns)
		if err != nil {
			return nil, nil, err
		}
		return exec.NewIndexScan(ctx, n.Dataset, n.Index, n.Literal, n.Columns), names, nil

	case *plan.VectorScan:
		names, err := resolveColumns(ctx, n.Dataset, n.Columns)
		if err != nil {
			return nil, nil, err
		}
		return exec.NewVectorScan(ctx, n.Dataset, n.Index, n.Query, n.K, n.Columns), names, nil

	case *plan.Filter:
		input, names, err := buildOperator(ctx, n.Input)
		if err != nil {
			return nil, nil, err
		}
		return exec.NewFilter(ctx, input, names, n.Pred), names, nil

	case *plan.Project:
		input, inputNames, err := buildOperator(ctx, n.Input)
		if err != nil {
			return nil, nil, err
		}
		return exec.NewProject(ctx, input, inputNames, n.Names, n.Exprs), n.Names, nil

	case *plan.GroupBy:
		input, inputNames, err := buildOperator(ctx, n.Input)
		if err != nil {
			return nil, nil, err
		}
		gb := exec.NewGroupBy(ctx, input, inputNames, n)
		names := gb.Names()
		if n.Having == nil {
			return gb, names, nil
		}
		return exec.NewFilter(ctx, gb, names, n.Having), names, nil

	case *plan.Order:
		input, names, err := buildOperator(ctx, n.Input)
		if err != nil {
			return nil, nil, err
		}
		return exec.NewOrder(ctx, input, names, n.Keys), names, nil

	case *plan.Limit:
		input, names, err := buildOperator(ctx, n.Input)
		if err != nil {
			return nil, nil, err
		}
		return exec.NewLimit(input, n.N), names, nil

	default:
		return nil, nil, &errs.Unsupported{Op: fmt.Sprintf("plan node %T", n)}
	}
}

func resolveColumns(ctx *exec.Context, dsName string, columns []string) ([]string, error) {
	if len(columns) > 0 {
		return columns, nil
	}
	ds, err := ctx.Store.GetByName(dsName)
	if err != nil {
		return nil, err
	}
	return ds.Schema.Names(), nil
}

// leafDataset walks down a plan tree to the Scan/IndexScan/VectorScan
// leaf and returns the dataset it reads from. Queries never join in this
// revision, so there is always exactly one.
func leafDataset(node plan.Node) (string, error) {
	switch n := node.(type) {
	case *plan.Scan:
		return n.Dataset, nil
	case *plan.IndexScan:
		return n.Dataset, nil
	case *plan.VectorScan:
		return n.Dataset, nil
	case *plan.Filter:
		return leafDataset(n.Input)
	case *plan.Project:
		return leafDataset(n.Input)
	case *plan.GroupBy:
		return leafDataset(n.Input)
	case *plan.Order:
		return leafDataset(n.Input)
	case *plan.Limit:
		return leafDataset(n.Input)
	default:
		return "", &errs.Unsupported{Op: fmt.Sprintf("plan node %T", n)}
	}
}
