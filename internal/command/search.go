package command

import "linal/internal/eval"

// Search is shorthand for a top-K nearest-neighbor lookup via a vector
// index: `SEARCH ds WHERE col ~= [vec] LIMIT k`.
type Search struct {
	Dataset string
	Index   string
	Column  string
	Query   eval.Expr
	K       int
	Columns []string
}

func (*Search) commandNode() {}
