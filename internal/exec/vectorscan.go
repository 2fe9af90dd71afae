package exec

import (
	"linal/internal/dataset"
	"linal/internal/errs"
	"linal/internal/eval"
	"linal/internal/index"
)

// VectorScanOp returns the top-K rows by similarity score against a
// vector index, in the index's own best-first order; ties are broken by
// insertion order since the index scan itself is stable.
type VectorScanOp struct {
	ctx     *Context
	dataset string
	index   string
	query   eval.Expr
	k       int
	columns []string
	ds      *dataset.Dataset
	results []index.ScoredRow
	pos     int
}

func NewVectorScan(ctx *Context, datasetName, indexName string, query eval.Expr, k int, columns []string) *VectorScanOp {
	return &VectorScanOp{ctx: ctx, dataset: datasetName, index: indexName, query: query, k: k, columns: columns}
}

func (s *VectorScanOp) Open() error {
	ds, err := s.ctx.Store.GetByName(s.dataset)
	if err != nil {
		return err
	}
	s.ds = ds
	idx, ok := ds.Indexes()[s.index]
	if !ok {
		return &errs.NotFound{Kind: "index", Name: s.index}
	}
	vecIdx, ok := idx.(*index.VectorIndex)
	if !ok {
		return &errs.TypeError{Op: "vector_scan", Types: []string{idx.Kind()}}
	}
	qv, err := eval.Eval(s.query, &eval.MapEnvironment{})
	if err != nil {
		return err
	}
	th := qv.TensorHandle()
	if th == nil {
		return &errs.TypeError{Op: "vector_scan", Types: []string{qv.Kind().String()}}
	}
	results, err := vecIdx.KNN(th, s.k)
	if err != nil {
		return err
	}
	s.results = results
	return nil
}

func (s *VectorScanOp) Next() (Row, bool, error) {
	if s.pos%deadlineCheckBatch == 0 {
		if err := s.ctx.CheckDeadline(); err != nil {
			return Row{}, false, err
		}
	}
	for s.pos < len(s.results) {
		id := s.results[s.pos].RowID
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

func (s *VectorScanOp) Close() error { return nil }
