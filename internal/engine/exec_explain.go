package engine

import (
	"linal/internal/command"
	"linal/internal/index"
	"linal/internal/plan"
)

func (e *Engine) executeExplain(di *DatabaseInstance, c *command.Explain) (DslOutput, error) {
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
	text := plan.Explain(physical, nil)
	return DslOutput{Kind: OutputPlan, Payload: text, Message: text}, nil
}
