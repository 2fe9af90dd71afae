package engine

import (
	"fmt"

	"linal/internal/command"
)

func (e *Engine) executeCreateHashIndex(di *DatabaseInstance, c *command.CreateHashIndex) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	if err := d.CreateHashIndex(c.Index, c.Column); err != nil {
		return DslOutput{}, err
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("index %q created on %s.%s", c.Index, c.Dataset, c.Column)), nil
}

func (e *Engine) executeCreateVectorIndex(di *DatabaseInstance, c *command.CreateVectorIndex) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	if err := d.CreateVectorIndex(c.Index, c.Column, c.Metric); err != nil {
		return DslOutput{}, err
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("vector index %q created on %s.%s", c.Index, c.Dataset, c.Column)), nil
}

func (e *Engine) executeDropIndex(di *DatabaseInstance, c *command.DropIndex) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	if err := d.DropIndex(c.Index); err != nil {
		return DslOutput{}, err
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("index %q dropped", c.Index)), nil
}

func (e *Engine) executeShowIndexes(di *DatabaseInstance, c *command.ShowIndexes) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	descs := d.ListIndexes()
	return DslOutput{Kind: OutputList, Payload: descs, Message: fmt.Sprintf("%d index(es) on %s", len(descs), c.Dataset)}, nil
}
