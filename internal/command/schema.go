package command

import (
	"linal/internal/eval"
	"linal/internal/schema"
	"linal/internal/value"
)

// AddColumn adds a field to a dataset's schema, either with a constant
// default (Expr nil) or a computed expression (materialized immediately,
// or stored lazily when Lazy is set).
type AddColumn struct {
	Dataset string
	Field   schema.Field
	Expr    eval.Expr
	Default value.Value
	Lazy    bool
}

// MaterializeColumn converts every lazy computed column of a dataset
// into a materialized one.
type MaterializeColumn struct {
	Dataset string
}

// RenameColumn renames a dataset's field.
type RenameColumn struct {
	Dataset string
	From    string
	To      string
}

// DropColumn removes a field from a dataset's schema.
type DropColumn struct {
	Dataset string
	Column  string
}

func (*AddColumn) commandNode()         {}
func (*MaterializeColumn) commandNode() {}
func (*RenameColumn) commandNode()      {}
func (*DropColumn) commandNode()        {}
