package command

import "linal/internal/plan"

// Explain returns the optimized plan tree for Root, rendered as text,
// without executing it.
type Explain struct {
	Root plan.Node
}

func (*Explain) commandNode() {}
