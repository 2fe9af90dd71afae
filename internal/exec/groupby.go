package exec

import (
	"encoding/binary"
	"math"

	"linal/internal/errs"
	"linal/internal/eval"
	"linal/internal/plan"
	"linal/internal/tensor"
	"linal/internal/value"
)

// aggState accumulates one Aggregate's running state for one group.
type aggState struct {
	kind plan.AggKind

	count    int64 // COUNT(*) / COUNT(expr) / AVG denominator
	haveVal  bool
	sumInt   int64
	sumFloat float64
	isFloat  bool
	sumT     *tensor.Tensor // SUM/AVG element-wise accumulator for vector/matrix inputs

	extreme value.Value // current MIN/MAX
}

func newAggState(kind plan.AggKind) *aggState {
	return &aggState{kind: kind}
}

func (a *aggState) observe(v value.Value) error {
	switch a.kind {
	case plan.AggCount:
		a.count++
		return nil
	case plan.AggCountExpr:
		if !v.IsNull() {
			a.count++
		}
		return nil
	case plan.AggSum, plan.AggAvg:
		if v.IsNull() {
			return nil
		}
		return a.accumulateSum(v)
	case plan.AggMin:
		return a.accumulateExtreme(v, true)
	case plan.AggMax:
		return a.accumulateExtreme(v, false)
	default:
		return &errs.Internal{Msg: "unknown aggregate kind"}
	}
}

func (a *aggState) accumulateSum(v value.Value) error {
	a.count++
	switch v.Kind() {
	case value.KindInt:
		if a.isFloat {
			a.sumFloat += float64(v.Int64())
		} else {
			a.sumInt += v.Int64()
		}
		return nil
	case value.KindFloat:
		if !a.isFloat {
			a.sumFloat = float64(a.sumInt)
			a.isFloat = true
		}
		a.sumFloat += v.Float64()
		return nil
	case value.KindVector, value.KindMatrix, value.KindTensor:
		t := v.TensorHandle()
		if a.sumT == nil {
			a.sumT = t.Clone(tensor.NextID())
			return nil
		}
		out, err := tensor.BinaryStrict(tensor.OpAdd, a.sumT, t, tensor.NextID())
		if err != nil {
			return err
		}
		a.sumT = out
		return nil
	default:
		return &errs.TypeError{Op: "sum", Types: []string{v.Kind().String()}}
	}
}

func (a *aggState) accumulateExtreme(v value.Value, wantMin bool) error {
	if v.IsNull() {
		return nil
	}
	if !a.haveVal {
		a.extreme = v
		a.haveVal = true
		return nil
	}
	cmp, ok := value.Compare(v, a.extreme)
	if !ok {
		return &errs.TypeError{Op: "min/max", Types: []string{v.Kind().String(), a.extreme.Kind().String()}}
	}
	if (wantMin && cmp < 0) || (!wantMin && cmp > 0) {
		a.extreme = v
	}
	return nil
}

func (a *aggState) result() value.Value {
	switch a.kind {
	case plan.AggCount, plan.AggCountExpr:
		return value.Int(a.count)
	case plan.AggSum:
		return a.sumResult()
	case plan.AggAvg:
		return a.avgResult()
	case plan.AggMin, plan.AggMax:
		if !a.haveVal {
			return value.Null
		}
		return a.extreme
	default:
		return value.Null
	}
}

func (a *aggState) sumResult() value.Value {
	if a.sumT != nil {
		return wrapTensorAgg(a.sumT)
	}
	if a.isFloat {
		return value.Float(a.sumFloat)
	}
	return value.Int(a.sumInt)
}

func (a *aggState) avgResult() value.Value {
	if a.count == 0 {
		return value.Null
	}
	if a.sumT != nil {
		scaled, err := tensor.Scale(a.sumT, 1/float64(a.count), tensor.NextID())
		if err != nil {
			return value.Null
		}
		return wrapTensorAgg(scaled)
	}
	sum := a.sumFloat
	if !a.isFloat {
		sum = float64(a.sumInt)
	}
	return value.Float(sum / float64(a.count))
}

func wrapTensorAgg(t *tensor.Tensor) value.Value {
	switch t.Rank() {
	case 1:
		return value.Vector(t)
	case 2:
		return value.Matrix(t)
	default:
		return value.Tensor(t)
	}
}

// canonicalKey encodes a value.Value into a string suitable as a Go map
// key, giving GroupBy the structural (value-equality) semantics C1
// defines rather than Go's pointer-identity struct comparison.
func canonicalKey(v value.Value) string {
	buf := make([]byte, 0, 16)
	buf = append(buf, byte(v.Kind()))
	switch v.Kind() {
	case value.KindInt:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v.Int64()))
		buf = append(buf, b[:]...)
	case value.KindFloat:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.Float64()))
		buf = append(buf, b[:]...)
	case value.KindBool:
		if v.BoolVal() {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case value.KindString:
		buf = append(buf, []byte(v.Str())...)
	case value.KindVector, value.KindMatrix, value.KindTensor:
		t := v.TensorHandle()
		for _, d := range t.Shape() {
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], uint64(d))
			buf = append(buf, b[:]...)
		}
		for _, d := range t.Data() {
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(d))
			buf = append(buf, b[:]...)
		}
	}
	return string(buf)
}

type group struct {
	keys  []value.Value
	aggs  []*aggState
}

// GroupByOp partitions input rows by Keys and computes Aggs per group,
// scanning the input to build a map<key_tuple, aggregator_state> and then
// emitting one row per group, in first-seen order (deterministic given a
// fixed input order, since Go map iteration would otherwise be random).
type GroupByOp struct {
	ctx        *Context
	input      Operator
	inputNames []string
	node       *plan.GroupBy
	groups     map[string]*group
	order      []string
	pos        int
	n          int
}

func NewGroupBy(ctx *Context, input Operator, inputNames []string, node *plan.GroupBy) *GroupByOp {
	return &GroupByOp{ctx: ctx, input: input, inputNames: inputNames, node: node, groups: make(map[string]*group)}
}

// Names returns this GroupBy's output column names: group keys first (by
// KeyNames), then each aggregate's ResultName.
func (g *GroupByOp) Names() []string {
	out := append([]string{}, g.node.KeyNames...)
	for _, a := range g.node.Aggs {
		out = append(out, a.ResultName)
	}
	return out
}

func (g *GroupByOp) Open() error {
	if err := g.input.Open(); err != nil {
		return err
	}
	for {
		if g.n%deadlineCheckBatch == 0 {
			if err := g.ctx.CheckDeadline(); err != nil {
				return err
			}
		}
		row, ok, err := g.input.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		g.n++
		if err := g.observe(row); err != nil {
			return err
		}
	}
	return nil
}

func (g *GroupByOp) observe(row Row) error {
	env := &rowEnv{names: g.inputNames, row: row, ambient: g.ctx.Ambient}
	keys := make([]value.Value, len(g.node.Keys))
	keyParts := make([]string, len(g.node.Keys))
	for i, k := range g.node.Keys {
		v, err := eval.Eval(k, env)
		if err != nil {
			return err
		}
		keys[i] = v
		keyParts[i] = canonicalKey(v)
	}
	gk := ""
	for _, p := range keyParts {
		gk += p + "\x00"
	}

	grp, ok := g.groups[gk]
	if !ok {
		grp = &group{keys: keys, aggs: make([]*aggState, len(g.node.Aggs))}
		for i, a := range g.node.Aggs {
			grp.aggs[i] = newAggState(a.Kind)
		}
		g.groups[gk] = grp
		g.order = append(g.order, gk)
	}

	for i, a := range g.node.Aggs {
		var v value.Value
		if a.Expr != nil {
			var err error
			v, err = eval.Eval(a.Expr, env)
			if err != nil {
				return err
			}
		}
		if err := grp.aggs[i].observe(v); err != nil {
			return err
		}
	}
	return nil
}

func (g *GroupByOp) Next() (Row, bool, error) {
	if g.pos >= len(g.order) {
		return Row{}, false, nil
	}
	grp := g.groups[g.order[g.pos]]
	g.pos++
	vals := make([]value.Value, 0, len(grp.keys)+len(grp.aggs))
	vals = append(vals, grp.keys...)
	for _, a := range grp.aggs {
		vals = append(vals, a.result())
	}
	return Row{Values: vals}, true, nil
}

func (g *GroupByOp) Close() error { return g.input.Close() }
