package dataset

import (
	"linal/internal/errs"
	"linal/internal/index"
	"linal/internal/value"
)

// CreateHashIndex builds a new hash index over column, doing a full
// rebuild from the dataset's current rows.
func (d *Dataset) CreateHashIndex(indexName, column string) error {
	if _, exists := d.indexes[indexName]; exists {
		return &errs.AlreadyExists{Kind: "index", Name: indexName}
	}
	pos := d.Schema.IndexOf(column)
	if pos < 0 {
		return &errs.NotFound{Kind: "column", Name: column}
	}
	idx := index.NewHashIndex(indexName, column, pos)
	if err := idx.Build(d.indexableRows()); err != nil {
		return err
	}
	d.indexes[indexName] = idx
	return nil
}

// CreateVectorIndex builds a new vector index over a Vector-typed column
// with a fixed metric, doing a full rebuild from the dataset's current
// rows.
func (d *Dataset) CreateVectorIndex(indexName, column string, metric index.Metric) error {
	if _, exists := d.indexes[indexName]; exists {
		return &errs.AlreadyExists{Kind: "index", Name: indexName}
	}
	field, ok := d.Schema.Field(column)
	if !ok {
		return &errs.NotFound{Kind: "column", Name: column}
	}
	if field.Type.Kind != value.KindVector {
		return &errs.TypeError{Op: "create_vector_index", Types: []string{field.Type.String()}}
	}
	pos := d.Schema.IndexOf(column)
	idx := index.NewVectorIndex(indexName, column, pos, field.Type.Dim, metric)
	if err := idx.Build(d.indexableRows()); err != nil {
		return err
	}
	d.indexes[indexName] = idx
	return nil
}

// DropIndex removes an index from the dataset. Indexes have no
// dependents in this model, so dropping one that a materialized column
// happens to coincide with is always safe.
func (d *Dataset) DropIndex(name string) error {
	if _, ok := d.indexes[name]; !ok {
		return &errs.NotFound{Kind: "index", Name: name}
	}
	delete(d.indexes, name)
	return nil
}

// IndexDescriptor is an introspection-friendly summary of one attached
// index, used by SHOW INDEXES.
type IndexDescriptor struct {
	Name    string
	Columns []string
	Kind    string
	Metric  string
}

// ListIndexes returns descriptors for every index attached to the
// dataset.
func (d *Dataset) ListIndexes() []IndexDescriptor {
	out := make([]IndexDescriptor, 0, len(d.indexes))
	for _, idx := range d.indexes {
		desc := IndexDescriptor{Name: idx.Name(), Columns: idx.TargetColumns(), Kind: idx.Kind()}
		if vi, ok := idx.(*index.VectorIndex); ok {
			desc.Metric = vi.Metric().String()
		}
		out = append(out, desc)
	}
	return out
}
