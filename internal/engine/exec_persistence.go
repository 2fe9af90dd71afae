package engine

import (
	"fmt"

	"linal/internal/command"
	"linal/internal/dataset"
	"linal/internal/errs"
	"linal/internal/storage"
	"linal/internal/value"
)

func (e *Engine) executeSaveDataset(di *DatabaseInstance, c *command.SaveDataset) (DslOutput, error) {
	d, err := di.Store.GetByName(c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	rows := make([][]value.Value, 0, d.RowsLen())
	for _, r := range d.Rows {
		rows = append(rows, r.Values)
	}
	rec := storage.DatasetRecord{Name: d.Name, Schema: d.Schema, Rows: rows, Metadata: d.Metadata.Extra}
	if err := e.adapter.SaveDataset(di.Name, rec); err != nil {
		return DslOutput{}, err
	}
	return ok(fmt.Sprintf("%s saved", c.Dataset)), nil
}

func (e *Engine) executeLoadDataset(di *DatabaseInstance, c *command.LoadDataset) (DslOutput, error) {
	rec, err := e.adapter.LoadDataset(di.Name, c.Dataset)
	if err != nil {
		return DslOutput{}, err
	}
	d := dataset.New(rec.Name, rec.Schema)
	for _, row := range rec.Rows {
		if _, err := d.InsertRow(row); err != nil {
			return DslOutput{}, err
		}
	}
	for k, v := range rec.Metadata {
		d.SetMetadata(k, v)
	}
	if err := di.Store.Register(d); err != nil {
		return DslOutput{}, err
	}
	di.bumpGenerationLocked()
	return ok(fmt.Sprintf("%s loaded with %d row(s)", rec.Name, len(rec.Rows))), nil
}

func (e *Engine) executeSaveTensor(di *DatabaseInstance, c *command.SaveTensor) (DslOutput, error) {
	v, ok2 := di.Binding(c.Tensor)
	if !ok2 {
		return DslOutput{}, &errs.NotFound{Kind: "binding", Name: c.Tensor}
	}
	rec := tensorRecordFromValue(c.Tensor, v)
	if err := e.adapter.SaveTensor(di.Name, rec); err != nil {
		return DslOutput{}, err
	}
	return ok(fmt.Sprintf("%s saved", c.Tensor)), nil
}

func (e *Engine) executeLoadTensor(di *DatabaseInstance, c *command.LoadTensor) (DslOutput, error) {
	rec, err := e.adapter.LoadTensor(di.Name, c.Tensor)
	if err != nil {
		return DslOutput{}, err
	}
	v, err := valueFromTensorRecord(rec)
	if err != nil {
		return DslOutput{}, err
	}
	di.setBinding(rec.Name, v)
	return DslOutput{Kind: outputKindFor(v), Payload: v, Message: fmt.Sprintf("%s loaded", rec.Name)}, nil
}
