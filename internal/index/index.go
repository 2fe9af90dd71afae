// Package index implements the in-memory index layer: hash indexes for
// equality lookup and brute-force vector indexes for similarity search.
// Indexes are rebuilt from scratch on creation and maintained incrementally
// on insert. Nothing here is persisted, and neither bootstrap nor LOAD
// re-creates an index: a dataset recovered from storage comes back with
// no indexes attached.
package index

import "linal/internal/value"

// IndexableRow is the minimal row shape an index needs: enough to build
// or incrementally maintain itself without importing the dataset package
// (which in turn depends on index for index maintenance).
type IndexableRow struct {
	ID     uint64
	Values []value.Value
}

// Index is the contract every index implementation satisfies.
type Index interface {
	// Name is the index's user-facing identifier, unique within its dataset.
	Name() string
	// TargetColumns lists the column(s) the index is built over.
	TargetColumns() []string
	// Kind identifies the concrete index type ("hash" or "vector"), used
	// for introspection and by the planner to decide eligibility.
	Kind() string
	// Build discards any existing state and rebuilds from rows.
	Build(rows []IndexableRow) error
	// OnInsert incrementally maintains the index for one newly inserted row.
	OnInsert(row IndexableRow) error
}
