// Package eval implements the expression AST and the pure evaluator that
// walks it against a row-plus-ambient environment.
package eval

import "linal/internal/value"

// Expr is any evaluable expression node.
type Expr interface {
	exprNode()
}

// Literal wraps a constant value.
type Literal struct {
	Value value.Value
}

// ColumnRef names a column of the current row. If that column is a lazy
// computed column, evaluating the reference evaluates its stored
// expression against the same row.
type ColumnRef struct {
	Name string
}

// TupleField accesses a named field of a tuple bound in the ambient
// environment. Base must evaluate through a ColumnRef naming the bound
// tuple.
type TupleField struct {
	Base  Expr
	Field string
}

// TensorIndex applies literal-or-wildcard indexing to the tensor value
// Target evaluates to.
type TensorIndex struct {
	Target  Expr
	Indices []IndexComponent
}

// IndexComponent is one position of a TensorIndex: either a wildcard, or
// an expression that must evaluate to an Int.
type IndexComponent struct {
	Wildcard bool
	Index    Expr
}

// BinOp names a binary operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
)

// Binary applies a binary operator to two operands.
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

// UnaryOp names a unary operator.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// Unary applies a unary operator to one operand.
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

// Call invokes a named builtin function (a tensor kernel, e.g. DOT,
// COSINE, MATMUL) with the given arguments.
type Call struct {
	Name string
	Args []Expr
}

// ComputedLookup resolves a value the caller pre-computed and bound into
// the environment (e.g. an aggregate result visible to a HAVING clause).
type ComputedLookup struct {
	Column string
}

func (*Literal) exprNode()        {}
func (*ColumnRef) exprNode()      {}
func (*TupleField) exprNode()     {}
func (*TensorIndex) exprNode()    {}
func (*Binary) exprNode()         {}
func (*Unary) exprNode()          {}
func (*Call) exprNode()           {}
func (*ComputedLookup) exprNode() {}
