package exec

import (
	"sort"

	"linal/internal/eval"
	"linal/internal/plan"
	"linal/internal/value"
)

// OrderOp materializes its input and stable-sorts it by one or more keys.
// Materializing is unavoidable for a correct sort; deadline checks happen
// once per deadlineCheckBatch rows while draining the input and once more
// before returning the first sorted row.
type OrderOp struct {
	ctx    *Context
	input  Operator
	names  []string
	keys   []plan.SortKey
	sorted []Row
	pos    int
	n      int
}

func NewOrder(ctx *Context, input Operator, names []string, keys []plan.SortKey) *OrderOp {
	return &OrderOp{ctx: ctx, input: input, names: names, keys: keys}
}

func (o *OrderOp) Open() error {
	if err := o.input.Open(); err != nil {
		return err
	}
	var rows []Row
	for {
		if o.n%deadlineCheckBatch == 0 {
			if err := o.ctx.CheckDeadline(); err != nil {
				return err
			}
		}
		row, ok, err := o.input.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		o.n++
		rows = append(rows, row)
	}

	keyed := make([][]value.Value, len(rows))
	var sortErr error
	for i, row := range rows {
		env := &rowEnv{names: o.names, row: row, ambient: o.ctx.Ambient}
		ks := make([]value.Value, len(o.keys))
		for j, k := range o.keys {
			v, err := eval.Eval(k.Expr, env)
			if err != nil {
				sortErr = err
				break
			}
			ks[j] = v
		}
		keyed[i] = ks
	}
	if sortErr != nil {
		return sortErr
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		for j, k := range o.keys {
			cmp, ok := value.Compare(keyed[idx[a]][j], keyed[idx[b]][j])
			if !ok || cmp == 0 {
				continue
			}
			if k.Dir == plan.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	o.sorted = make([]Row, len(rows))
	for i, id := range idx {
		o.sorted[i] = rows[id]
	}
	return nil
}

func (o *OrderOp) Next() (Row, bool, error) {
	if o.pos == 0 {
		if err := o.ctx.CheckDeadline(); err != nil {
			return Row{}, false, err
		}
	}
	if o.pos >= len(o.sorted) {
		return Row{}, false, nil
	}
	r := o.sorted[o.pos]
	o.pos++
	return r, true, nil
}

func (o *OrderOp) Close() error { return o.input.Close() }
