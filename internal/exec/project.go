package exec

import (
	"linal/internal/eval"
	"linal/internal/value"
)

// ProjectOp evaluates Exprs against each input row (named per inputNames)
// to produce output rows with the given output column names.
type ProjectOp struct {
	ctx        *Context
	input      Operator
	inputNames []string
	outNames   []string
	exprs      []eval.Expr
	n          int
}

func NewProject(ctx *Context, input Operator, inputNames, outNames []string, exprs []eval.Expr) *ProjectOp {
	return &ProjectOp{ctx: ctx, input: input, inputNames: inputNames, outNames: outNames, exprs: exprs}
}

func (p *ProjectOp) Open() error { return p.input.Open() }

func (p *ProjectOp) Next() (Row, bool, error) {
	if p.n%deadlineCheckBatch == 0 {
		if err := p.ctx.CheckDeadline(); err != nil {
			return Row{}, false, err
		}
	}
	row, ok, err := p.input.Next()
	if err != nil || !ok {
		return Row{}, ok, err
	}
	p.n++
	env := &rowEnv{names: p.inputNames, row: row, ambient: p.ctx.Ambient}
	out := make([]value.Value, len(p.exprs))
	for i, e := range p.exprs {
		v, err := eval.Eval(e, env)
		if err != nil {
			return Row{}, false, err
		}
		out[i] = v
	}
	return Row{ID: row.ID, Values: out}, true, nil
}

func (p *ProjectOp) Close() error { return p.input.Close() }

// OutputNames returns the projection's output column names, for
// composing with an operator above it (e.g. Order referencing a
// projected alias).
func (p *ProjectOp) OutputNames() []string { return p.outNames }
