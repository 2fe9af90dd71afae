package tensor

import (
	"bytes"
	"encoding/gob"
)

// wireTensor is Tensor's exported mirror, used only for gob encoding:
// Tensor's fields are private so callers can't construct an inconsistent
// handle, but that means gob (which only sees exported fields via
// reflection) needs an explicit bridge.
type wireTensor struct {
	ID    uint64
	Shape []int
	Data  []float64
}

// GobEncode implements gob.GobEncoder.
func (t *Tensor) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	w := wireTensor{ID: t.id, Shape: []int(t.shape), Data: t.data}
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (t *Tensor) GobDecode(data []byte) error {
	var w wireTensor
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	t.id = w.ID
	t.shape = Shape(w.Shape)
	t.data = w.Data
	return nil
}
