package engine

import (
	"fmt"

	"linal/internal/command"
)

func (e *Engine) executeAddColumn(di *DatabaseInstance, c *command.AddColumn) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	if err := d.AddColumn(c.Field, c.Expr, c.Default, c.Lazy); err != nil {
		return DslOutput{}, err
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("%s.%s added", c.Dataset, c.Field.Name)), nil
}

func (e *Engine) executeMaterializeColumn(di *DatabaseInstance, c *command.MaterializeColumn) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	if err := d.Materialize(); err != nil {
		return DslOutput{}, err
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("%s materialized", c.Dataset)), nil
}

func (e *Engine) executeRenameColumn(di *DatabaseInstance, c *command.RenameColumn) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	if err := d.RenameColumn(c.From, c.To); err != nil {
		return DslOutput{}, err
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("%s.%s renamed to %s", c.Dataset, c.From, c.To)), nil
}

func (e *Engine) executeDropColumn(di *DatabaseInstance, c *command.DropColumn) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	if err := d.DropColumn(c.Column); err != nil {
		return DslOutput{}, err
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("%s.%s dropped", c.Dataset, c.Column)), nil
}
