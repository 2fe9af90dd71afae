package engine

import (
	"fmt"

	"linal/internal/command"
	"linal/internal/exec"
	"linal/internal/value"
)

// executeSearch answers the SEARCH shorthand directly against a named
// vector index, bypassing the planner entirely since there is no
// candidate substitution to choose between: the index is already named.
func (e *Engine) executeSearch(di *DatabaseInstance, c *command.Search) (DslOutput, error) {
	ctx := exec.NewContext(di.Store)
	columns, err := resolveColumns(ctx, c.Dataset, c.Columns)
	if err != nil {
		return DslOutput{}, err
	}

	op := exec.NewVectorScan(ctx, c.Dataset, c.Index, c.Query, c.K, c.Columns)
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

	rs := ResultSet{Columns: columns, Rows: rows}
	return DslOutput{Kind: OutputList, Payload: rs, Message: fmt.Sprintf("%d match(es)", len(rows))}, nil
}
