// Package plan implements LINAL's logical and physical query plans: the
// tree of relational operators a query compiles to, and the optimizer
// passes (predicate pushdown, projection pruning, index selection,
// constant folding) that turn a logical plan into a physical one.
package plan

import (
	"linal/internal/eval"
	"linal/internal/index"
)

// SortDir names an ORDER BY direction.
type SortDir int

const (
	Asc SortDir = iota
	Desc
)

// SortKey is one ORDER BY key: an expression plus direction. Multiple
// keys are applied in the order given, each breaking ties left by the
// previous.
type SortKey struct {
	Expr eval.Expr
	Dir  SortDir
}

// AggKind names an aggregate function.
type AggKind int

const (
	AggCount AggKind = iota
	AggCountExpr
	AggSum
	AggAvg
	AggMin
	AggMax
)

// Aggregate is one GroupBy output column: an aggregate function applied
// to an expression (nil for COUNT(*)), bound to ResultName for HAVING and
// projection.
type Aggregate struct {
	Kind       AggKind
	Expr       eval.Expr
	ResultName string
}

// Node is any logical or physical plan node.
type Node interface {
	planNode()
}

// Scan reads every row of a dataset, optionally restricted to the column
// set Columns requires (projection pruning fills this in; empty means
// "all columns").
type Scan struct {
	Dataset string
	Columns []string
}

// IndexScan is the physical substitution for a Filter-over-Scan whose
// predicate is a single-column equality against a hash index.
type IndexScan struct {
	Dataset string
	Index   string
	Column  string
	Literal eval.Expr
	Columns []string
}

// VectorScan is the physical substitution for a cosine-similarity
// predicate against a vector index, returning the top K matches.
type VectorScan struct {
	Dataset string
	Index   string
	Column  string
	Query   eval.Expr
	K       int
	Columns []string
}

// Filter keeps only rows for which Pred evaluates to true.
type Filter struct {
	Input Node
	Pred  eval.Expr
}

// Project evaluates Exprs against each input row to produce the output
// columns named Names.
type Project struct {
	Input Node
	Names []string
	Exprs []eval.Expr
}

// GroupBy partitions input rows by Keys and computes Aggs per group,
// optionally filtering groups with Having.
type GroupBy struct {
	Input  Node
	Keys   []eval.Expr
	KeyNames []string
	Aggs   []Aggregate
	Having eval.Expr
}

// Order sorts input rows by Keys.
type Order struct {
	Input Node
	Keys  []SortKey
}

// Limit keeps only the first N input rows.
type Limit struct {
	Input Node
	N     int
}

func (*Scan) planNode()       {}
func (*IndexScan) planNode()  {}
func (*VectorScan) planNode() {}
func (*Filter) planNode()     {}
func (*Project) planNode()    {}
func (*GroupBy) planNode()    {}
func (*Order) planNode()      {}
func (*Limit) planNode()      {}

// AvailableIndexes is what the optimizer consults to decide eligibility
// for IndexScan/VectorScan substitution: the index descriptors of one
// dataset, keyed by the column(s) they target.
type AvailableIndexes struct {
	ByColumn map[string][]index.Index
}
