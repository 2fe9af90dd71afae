package engine

import (
	"linal/internal/storage"
	"linal/internal/tensor"
	"linal/internal/value"
)

// wrapTensor lifts a raw tensor handle into the Value variant matching
// its rank: rank 1 is Vector, rank 2 is Matrix, anything else is the
// general Tensor kind.
func wrapTensor(t *tensor.Tensor) value.Value {
	switch t.Rank() {
	case 1:
		return value.Vector(t)
	case 2:
		return value.Matrix(t)
	default:
		return value.Tensor(t)
	}
}

func valueFromTensorRecord(rec storage.TensorRecord) (value.Value, error) {
	t, err := tensor.New(tensor.NextID(), tensor.Shape(rec.Shape), rec.Data)
	if err != nil {
		return value.Value{}, err
	}
	return wrapTensor(t), nil
}

func tensorRecordFromValue(name string, v value.Value) storage.TensorRecord {
	t := v.TensorHandle()
	return storage.TensorRecord{Name: name, Shape: []int(t.Shape()), Data: t.Data()}
}
