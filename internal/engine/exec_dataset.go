package engine

import (
	"fmt"

	"linal/internal/command"
)

func (e *Engine) executeCreateDataset(di *DatabaseInstance, c *command.CreateDataset) (DslOutput, error) {
	d, err := di.Store.Create(c.Name, c.Schema)
	if err != nil {
		return DslOutput{}, err
	}
	for _, row := range c.Rows {
		if _, err := d.InsertRow(row); err != nil {
			return DslOutput{}, err
		}
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("dataset %q created with %d row(s)", c.Name, len(c.Rows))), nil
}

func (e *Engine) executeInsertRow(di *DatabaseInstance, c *command.InsertRow) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	id, err := d.InsertRow(c.Values)
	if err != nil {
		return DslOutput{}, err
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("row %d inserted into %s", id, c.Dataset)), nil
}
