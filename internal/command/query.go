package command

import "linal/internal/plan"

// Select runs a query, already shaped into a logical plan tree by the
// parser (out of core scope); the engine optimizes and executes it.
type Select struct {
	Root plan.Node
}

func (*Select) commandNode() {}
