package dataset

import (
	"linal/internal/errs"
	"linal/internal/eval"
	"linal/internal/index"
	"linal/internal/schema"
	"linal/internal/value"
)

// InsertRow validates values against the schema, appends the row, and
// maintains every attached index. If any index fails to incorporate the
// new row, the insertion is rejected and the dataset is left unchanged
// (all-or-nothing): no partial index update is observable.
func (d *Dataset) InsertRow(values []value.Value) (uint64, error) {
	if err := d.Schema.Validate(values); err != nil {
		return 0, err
	}
	stored := make([]value.Value, len(values))
	for i, v := range values {
		if v.Kind() == value.KindInt && d.Schema.Fields[i].Type.Kind == value.KindFloat {
			f, _ := value.AsFloat(v)
			stored[i] = value.Float(f)
			continue
		}
		stored[i] = v
	}

	row := Row{ID: d.nextRow, Values: stored}
	ir := index.IndexableRow{ID: row.ID, Values: stored}

	applied := make([]index.Index, 0, len(d.indexes))
	for _, idx := range d.indexes {
		if err := idx.OnInsert(ir); err != nil {
			d.rebuildIndexes(applied)
			return 0, err
		}
		applied = append(applied, idx)
	}

	d.nextRow++
	d.Rows = append(d.Rows, row)
	d.stats.invalidateAll()
	d.touch()
	return row.ID, nil
}

// rebuildIndexes restores the already-applied indexes to their
// pre-insertion state by rebuilding them from the dataset's committed
// rows, undoing a partial OnInsert on the indexes that succeeded before
// one failed.
func (d *Dataset) rebuildIndexes(applied []index.Index) {
	rows := d.indexableRows()
	for _, idx := range applied {
		_ = idx.Build(rows)
	}
}

func (d *Dataset) indexableRows() []index.IndexableRow {
	out := make([]index.IndexableRow, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = index.IndexableRow{ID: r.ID, Values: r.Values}
	}
	return out
}

// AddColumn adds a field to the schema. With a default value (or Null),
// every existing row is filled with it. With an expression, materialized
// columns are evaluated immediately against every existing row; lazy
// columns store only the descriptor.
func (d *Dataset) AddColumn(field schema.Field, expr eval.Expr, defaultValue value.Value, lazy bool) error {
	if d.Schema.IndexOf(field.Name) >= 0 {
		return &errs.AlreadyExists{Kind: "column", Name: field.Name}
	}
	prev := d.Schema
	d.Schema = d.Schema.WithColumn(field)

	if expr == nil {
		for i := range d.Rows {
			d.Rows[i].Values = append(d.Rows[i].Values, defaultValue)
		}
		d.touch()
		return nil
	}

	d.computed[field.Name] = &ComputedColumn{Name: field.Name, Expr: expr, Materialized: !lazy}

	if lazy {
		for i := range d.Rows {
			d.Rows[i].Values = append(d.Rows[i].Values, value.Null)
		}
		d.touch()
		return nil
	}

	vals := make([]value.Value, len(d.Rows))
	for i := range d.Rows {
		env := d.RowEnvironment(d.Rows[i], nil, nil, nil)
		v, err := eval.Eval(expr, env)
		if err != nil {
			d.Schema = prev
			delete(d.computed, field.Name)
			return err
		}
		vals[i] = v
	}
	for i := range d.Rows {
		d.Rows[i].Values = append(d.Rows[i].Values, vals[i])
	}
	d.touch()
	return nil
}

// Materialize converts every lazy computed column into a materialized
// one by evaluating its expression row-by-row and storing the result.
func (d *Dataset) Materialize() error {
	for name, cc := range d.computed {
		if cc.Materialized {
			continue
		}
		idx := d.Schema.IndexOf(name)
		if idx < 0 {
			continue
		}
		for i := range d.Rows {
			env := d.RowEnvironment(d.Rows[i], nil, nil, nil)
			v, err := eval.Eval(cc.Expr, env)
			if err != nil {
				return err
			}
			d.Rows[i].Values[idx] = v
		}
		cc.Materialized = true
	}
	d.stats.invalidateAll()
	d.touch()
	return nil
}

// SetMetadata sets a key in the dataset's free-form metadata map.
func (d *Dataset) SetMetadata(key, val string) {
	d.Metadata.Extra[key] = val
	d.touch()
}

// ResolveRow returns row with every unmaterialized lazy column's stored
// Null placeholder replaced by its computed value, evaluated against
// row's own materialized columns. Rows with no lazy columns are returned
// unchanged (no copy). This is the boundary the query pipeline relies on
// to see lazy and materialized columns alike: every row a Dataset hands
// an Operator has already passed through here.
func (d *Dataset) ResolveRow(row Row) (Row, error) {
	var lazyNames []string
	for name, cc := range d.computed {
		if !cc.Materialized {
			lazyNames = append(lazyNames, name)
		}
	}
	if len(lazyNames) == 0 {
		return row, nil
	}
	resolved := Row{ID: row.ID, Values: append([]value.Value(nil), row.Values...)}
	env := d.RowEnvironment(resolved, nil, nil, nil)
	for _, name := range lazyNames {
		pos := d.Schema.IndexOf(name)
		if pos < 0 {
			continue
		}
		v, err := eval.Eval(&eval.ColumnRef{Name: name}, env)
		if err != nil {
			return Row{}, err
		}
		resolved.Values[pos] = v
	}
	return resolved, nil
}

// Projection returns the rows restricted to the named columns, in the
// order given, with any lazy column among them resolved to its computed
// value.
func (d *Dataset) Projection(columns []string) ([]Row, error) {
	positions := make([]int, len(columns))
	for i, c := range columns {
		p := d.Schema.IndexOf(c)
		if p < 0 {
			return nil, &errs.NotFound{Kind: "column", Name: c}
		}
		positions[i] = p
	}
	out := make([]Row, len(d.Rows))
	for i, r := range d.Rows {
		resolved, err := d.ResolveRow(r)
		if err != nil {
			return nil, err
		}
		vals := make([]value.Value, len(positions))
		for j, p := range positions {
			vals[j] = resolved.Values[p]
		}
		out[i] = Row{ID: r.ID, Values: vals}
	}
	return out, nil
}

// RenameColumn renames a schema field, failing if the new name collides
// with an existing one.
func (d *Dataset) RenameColumn(from, to string) error {
	if d.Schema.IndexOf(from) < 0 {
		return &errs.NotFound{Kind: "column", Name: from}
	}
	if d.Schema.IndexOf(to) >= 0 {
		return &errs.AlreadyExists{Kind: "column", Name: to}
	}
	d.Schema = d.Schema.Renamed(from, to)
	if cc, ok := d.computed[from]; ok {
		cc.Name = to
		d.computed[to] = cc
		delete(d.computed, from)
	}
	d.stats.invalidate(from)
	d.touch()
	return nil
}

// DropColumn removes a field from the schema and the corresponding value
// from every row. Fails if the column backs any attached index; the
// index must be dropped first.
func (d *Dataset) DropColumn(name string) error {
	pos := d.Schema.IndexOf(name)
	if pos < 0 {
		return &errs.NotFound{Kind: "column", Name: name}
	}
	for _, idx := range d.indexes {
		for _, tc := range idx.TargetColumns() {
			if tc == name {
				return &errs.SchemaViolation{Field: name, Reason: "column backs index " + idx.Name() + "; drop the index first"}
			}
		}
	}
	d.Schema = d.Schema.WithoutColumn(name)
	for i := range d.Rows {
		d.Rows[i].Values = append(d.Rows[i].Values[:pos], d.Rows[i].Values[pos+1:]...)
	}
	delete(d.computed, name)
	d.stats.invalidate(name)
	d.touch()
	return nil
}
