package command

import (
	"linal/internal/schema"
	"linal/internal/value"
)

// CreateDataset creates a dataset with the given schema. Rows is non-nil
// only for the `DATASET name COLUMNS (...) FROM (...)` form, which seeds
// the dataset with literal row tuples at creation time.
type CreateDataset struct {
	Name   string
	Schema schema.Schema
	Rows   [][]value.Value
}

// InsertRow appends one row to an existing dataset.
type InsertRow struct {
	Dataset string
	Values  []value.Value
}

func (*CreateDataset) commandNode() {}
func (*InsertRow) commandNode()     {}
