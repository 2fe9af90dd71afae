package exec

import (
	"linal/internal/dataset"
)

// ScanOp reads every row of a dataset in insertion order.
type ScanOp struct {
	ctx     *Context
	dataset string
	columns []string
	rows    []dataset.Row
	pos     int
}

func NewScan(ctx *Context, datasetName string, columns []string) *ScanOp {
	return &ScanOp{ctx: ctx, dataset: datasetName, columns: columns}
}

func (s *ScanOp) Open() error {
	ds, err := s.ctx.Store.GetByName(s.dataset)
	if err != nil {
		return err
	}
	if len(s.columns) == 0 {
		rows := make([]dataset.Row, len(ds.Rows))
		for i, r := range ds.Rows {
			resolved, err := ds.ResolveRow(r)
			if err != nil {
				return err
			}
			rows[i] = resolved
		}
		s.rows = rows
		return nil
	}
	rows, err := ds.Projection(s.columns)
	if err != nil {
		return err
	}
	s.rows = rows
	return nil
}

func (s *ScanOp) Next() (Row, bool, error) {
	if s.pos%deadlineCheckBatch == 0 {
		if err := s.ctx.CheckDeadline(); err != nil {
			return Row{}, false, err
		}
	}
	if s.pos >= len(s.rows) {
		return Row{}, false, nil
	}
	r := s.rows[s.pos]
	s.pos++
	return Row{ID: r.ID, Values: r.Values}, true, nil
}

func (s *ScanOp) Close() error { return nil }
