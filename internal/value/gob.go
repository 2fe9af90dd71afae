package value

import (
	"bytes"
	"encoding/gob"

	"linal/internal/tensor"
)

// wireValue is Value's exported mirror for gob encoding; see the
// analogous note in tensor/gob.go.
type wireValue struct {
	Kind Kind
	I    int64
	F    float64
	B    bool
	S    string
	T    *tensor.Tensor
}

// GobEncode implements gob.GobEncoder.
func (v Value) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	w := wireValue{Kind: v.kind, I: v.i, F: v.f, B: v.b, S: v.s, T: v.t}
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (v *Value) GobDecode(data []byte) error {
	var w wireValue
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	v.kind, v.i, v.f, v.b, v.s, v.t = w.Kind, w.I, w.F, w.B, w.S, w.T
	return nil
}
