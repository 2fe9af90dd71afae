package engine

import (
	"fmt"

	"linal/internal/command"
	"linal/internal/errs"
	"linal/internal/eval"
	"linal/internal/tensor"
)

func (e *Engine) executeDefineTensor(di *DatabaseInstance, c *command.DefineTensor) (DslOutput, error) {
	if _, exists := di.Binding(c.Name); exists {
		return DslOutput{}, &errs.AlreadyExists{Kind: "binding", Name: c.Name}
	}
	t, err := tensor.New(tensor.NextID(), tensor.Shape(c.Shape), c.Data)
	if err != nil {
		return DslOutput{}, err
	}
	v := wrapTensor(t)
	di.setBinding(c.Name, v)
	return DslOutput{Kind: outputKindFor(v), Payload: v, Message: fmt.Sprintf("%s defined", c.Name)}, nil
}

func (e *Engine) executeLetExpr(di *DatabaseInstance, c *command.LetExpr) (DslOutput, error) {
	v, err := eval.Eval(c.Expr, bindingsEnv{instance: di})
	if err != nil {
		return DslOutput{}, err
	}
	di.setBinding(c.Name, v)
	return DslOutput{Kind: outputKindFor(v), Payload: v, Message: fmt.Sprintf("%s = %s", c.Name, v)}, nil
}
