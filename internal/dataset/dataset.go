// Package dataset implements the in-memory row store: schema-validated
// rows, computed (materialized or lazy) columns, attached indexes, and
// the metadata every dataset carries.
package dataset

import (
	"time"

	"github.com/google/uuid"

	"linal/internal/eval"
	"linal/internal/index"
	"linal/internal/schema"
	"linal/internal/value"
)

// Row is one record: a stable ID (stable across the dataset's lifetime,
// used as the index layer's row identity) plus one value per schema
// field.
type Row struct {
	ID     uint64
	Values []value.Value
}

// ComputedColumn describes a column whose value is derived from an
// expression rather than stored directly: materialized columns are
// evaluated once per row and cached like any other column; lazy columns
// store only the descriptor and are evaluated on demand, once per
// ColumnRef, with cycle detection.
type ComputedColumn struct {
	Name       string
	Expr       eval.Expr
	Materialized bool
}

// Metadata is free-form bookkeeping every dataset carries: creation and
// update timestamps plus a caller-defined extra map (e.g. a description,
// an owning application name).
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   string
	Extra     map[string]string
}

// Dataset is a named, schema-typed collection of rows plus its attached
// indexes and computed-column descriptors.
type Dataset struct {
	ID       uuid.UUID
	Name     string
	Schema   schema.Schema
	Rows     []Row
	Metadata Metadata

	computed map[string]*ComputedColumn
	indexes  map[string]index.Index
	stats    *statsCache
	nextRow  uint64
}

// New constructs an empty dataset over schema s.
func New(name string, s schema.Schema) *Dataset {
	now := time.Now()
	return &Dataset{
		ID:       uuid.New(),
		Name:     name,
		Schema:   s,
		Metadata: Metadata{CreatedAt: now, UpdatedAt: now, Version: "1", Extra: map[string]string{}},
		computed: make(map[string]*ComputedColumn),
		indexes:  make(map[string]index.Index),
		stats:    newStatsCache(128),
	}
}

// RowsLen returns the current row count.
func (d *Dataset) RowsLen() int { return len(d.Rows) }

// Indexes returns the dataset's attached indexes, keyed by name.
func (d *Dataset) Indexes() map[string]index.Index { return d.indexes }

// ComputedColumns returns the dataset's computed-column descriptors,
// keyed by column name.
func (d *Dataset) ComputedColumns() map[string]*ComputedColumn { return d.computed }

// touch refreshes the dataset's UpdatedAt timestamp.
func (d *Dataset) touch() { d.Metadata.UpdatedAt = time.Now() }

// RowByID looks up a row by its stable ID. Since rows are never deleted
// in this revision (no UPDATE/DELETE in core scope), row ID equals
// position in Rows; the linear fallback guards against that invariant
// ever changing.
func (d *Dataset) RowByID(id uint64) (Row, bool) {
	if id < uint64(len(d.Rows)) && d.Rows[id].ID == id {
		return d.Rows[id], true
	}
	for _, r := range d.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}
