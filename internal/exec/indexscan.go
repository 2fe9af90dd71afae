package exec

import (
	"linal/internal/dataset"
	"linal/internal/errs"
	"linal/internal/eval"
	"linal/internal/index"
	"linal/internal/value"
)

// IndexScanOp resolves candidate row IDs via a hash index equality
// lookup, then materializes those rows by ID.
type IndexScanOp struct {
	ctx     *Context
	dataset string
	index   string
	literal eval.Expr
	columns []string
	ds      *dataset.Dataset
	matches []uint64
	pos     int
}

func NewIndexScan(ctx *Context, datasetName, indexName string, literal eval.Expr, columns []string) *IndexScanOp {
	return &IndexScanOp{ctx: ctx, dataset: datasetName, index: indexName, literal: literal, columns: columns}
}

func (s *IndexScanOp) Open() error {
	ds, err := s.ctx.Store.GetByName(s.dataset)
	if err != nil {
		return err
	}
	s.ds = ds
	idx, ok := ds.Indexes()[s.index]
	if !ok {
		return &errs.NotFound{Kind: "index", Name: s.index}
	}
	hashIdx, ok := idx.(*index.HashIndex)
	if !ok {
		return &errs.TypeError{Op: "index_scan", Types: []string{idx.Kind()}}
	}
	lit, err := eval.Eval(s.literal, &eval.MapEnvironment{})
	if err != nil {
		return err
	}
	matches, err := hashIdx.Lookup(lit)
	if err != nil {
		return err
	}
	s.matches = matches
	return nil
}

func (s *IndexScanOp) Next() (Row, bool, error) {
	if s.pos%deadlineCheckBatch == 0 {
		if err := s.ctx.CheckDeadline(); err != nil {
			return Row{}, false, err
		}
	}
	for s.pos < len(s.matches) {
		id := s.matches[s.pos]
		s.pos++
		row, ok := s.ds.RowByID(id)
		if !ok {
			continue
		}
		resolved, err := s.ds.ResolveRow(row)
		if err != nil {
			return Row{}, false, err
		}
		return projectRow(s.ds, resolved, s.columns), true, nil
	}
	return Row{}, false, nil
}

func (s *IndexScanOp) Close() error { return nil }

func projectRow(ds *dataset.Dataset, row dataset.Row, columns []string) Row {
	if len(columns) == 0 {
		return Row{ID: row.ID, Values: row.Values}
	}
	vals := make([]value.Value, len(columns))
	for i, c := range columns {
		pos := ds.Schema.IndexOf(c)
		if pos >= 0 && pos < len(row.Values) {
			vals[i] = row.Values[pos]
		}
	}
	return Row{ID: row.ID, Values: vals}
}
