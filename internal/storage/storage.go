// Package storage defines the Adapter contract the core depends on for
// persistence. Core code never depends on a concrete codec or backend;
// it only calls through this interface, so swapping memadapter for
// fileadapter (or a future remote adapter) never touches engine logic.
package storage

import (
	"linal/internal/schema"
	"linal/internal/value"
)

// DatasetRecord is the on-the-wire shape of a persisted dataset: its
// schema, every row's raw values, and its metadata. Indexes are not
// persisted, and a dataset loaded from a record has none attached.
type DatasetRecord struct {
	Name     string
	Schema   schema.Schema
	Rows     [][]value.Value
	Metadata map[string]string
}

// TensorRecord is the on-the-wire shape of a persisted standalone tensor
// handle (one not embedded in a dataset row).
type TensorRecord struct {
	Name  string
	Shape []int
	Data  []float64
}

// Adapter is the storage contract: save/load a dataset or tensor body,
// and enumerate what a database holds.
type Adapter interface {
	SaveDataset(db string, rec DatasetRecord) error
	LoadDataset(db, name string) (DatasetRecord, error)
	SaveTensor(db string, rec TensorRecord) error
	LoadTensor(db, name string) (TensorRecord, error)

	ListDatabases() ([]string, error)
	ListDatasets(db string) ([]string, error)
	ListTensors(db string) ([]string, error)

	// DeleteDataset, DeleteTensor, DeleteDatabase are optional: an
	// adapter that does not support deletion returns errs.Unsupported.
	DeleteDataset(db, name string) error
	DeleteTensor(db, name string) error
	DeleteDatabase(db string) error
}
