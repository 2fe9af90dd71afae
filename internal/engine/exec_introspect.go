package engine

import (
	"fmt"

	"linal/internal/command"
	"linal/internal/errs"
	"linal/internal/value"
)

func (e *Engine) executeShowSchema(di *DatabaseInstance, c *command.ShowSchema) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	return DslOutput{Kind: OutputList, Payload: d.Schema.Fields, Message: fmt.Sprintf("%s: %d column(s)", c.Dataset, len(d.Schema.Fields))}, nil
}

func (e *Engine) executeShowAll(di *DatabaseInstance, c *command.ShowAll) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	names := d.Schema.Names()
	rows := make([][]value.Value, 0, d.RowsLen())
	for _, r := range d.Rows {
		resolved, err := d.ResolveRow(r)
		if err != nil {
			return DslOutput{}, err
		}
		rows = append(rows, resolved.Values)
	}
	rs := ResultSet{Columns: names, Rows: rows}
	return DslOutput{Kind: OutputList, Payload: rs, Message: fmt.Sprintf("%d row(s)", len(rows))}, nil
}

func (e *Engine) executeShowShape(di *DatabaseInstance, c *command.ShowShape) (DslOutput, error) {
	v, ok := di.Binding(c.Tensor)
	if !ok {
		return DslOutput{}, &errs.NotFound{Kind: "binding", Name: c.Tensor}
	}
	switch v.Kind() {
	case value.KindVector, value.KindMatrix, value.KindTensor:
	default:
		return DslOutput{}, &errs.TypeError{Op: "SHAPE", Types: []string{v.Kind().String()}}
	}
	shape := []int(v.TensorHandle().Shape())
	return DslOutput{Kind: OutputList, Payload: shape, Message: fmt.Sprintf("%s: shape %v", c.Tensor, shape)}, nil
}

func (e *Engine) executeListDatasets(di *DatabaseInstance) (DslOutput, error) {
	names := di.Store.Names()
	return DslOutput{Kind: OutputList, Payload: names, Message: fmt.Sprintf("%d dataset(s)", len(names))}, nil
}

func (e *Engine) executeListTensors(di *DatabaseInstance) (DslOutput, error) {
	names := di.BindingNames()
	return DslOutput{Kind: OutputList, Payload: names, Message: fmt.Sprintf("%d binding(s)", len(names))}, nil
}
