package plan

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// ExplainOptions carries the runtime statistics EXPLAIN renders alongside
// the static tree shape, when available (nil fields are simply omitted).
type ExplainOptions struct {
	RowCounts map[Node]int
}

// Explain renders a physical plan tree as an indented text diagram
// showing the chosen access path at each node (Scan vs IndexScan vs
// VectorScan) and, when opts carries row counts, a humanized estimate
// next to each node.
func Explain(root Node, opts *ExplainOptions) string {
	var b strings.Builder
	explainNode(&b, root, 0, opts)
	return b.String()
}

func explainNode(b *strings.Builder, n Node, depth int, opts *ExplainOptions) {
	indent := strings.Repeat("  ", depth)
	label := describeNode(n, opts)
	b.WriteString(indent)
	b.WriteString(label)
	b.WriteString("\n")

	var child Node
	switch node := n.(type) {
	case *Filter:
		child = node.Input
	case *Project:
		child = node.Input
	case *GroupBy:
		child = node.Input
	case *Order:
		child = node.Input
	case *Limit:
		child = node.Input
	}
	if child != nil {
		explainNode(b, child, depth+1, opts)
	}
}

func describeNode(n Node, opts *ExplainOptions) string {
	count := ""
	if opts != nil {
		if rc, ok := opts.RowCounts[n]; ok {
			count = fmt.Sprintf(" (~%s rows)", humanize.Comma(int64(rc)))
		}
	}
	switch node := n.(type) {
	case *Scan:
		return fmt.Sprintf("Scan(%s, cols=%v)%s", node.Dataset, node.Columns, count)
	case *IndexScan:
		return fmt.Sprintf("IndexScan(%s via %s on %s)%s", node.Dataset, node.Index, node.Column, count)
	case *VectorScan:
		return fmt.Sprintf("VectorScan(%s via %s on %s, k=%d)%s", node.Dataset, node.Index, node.Column, node.K, count)
	case *Filter:
		return fmt.Sprintf("Filter%s", count)
	case *Project:
		return fmt.Sprintf("Project(%v)%s", node.Names, count)
	case *GroupBy:
		return fmt.Sprintf("GroupBy(keys=%v)%s", node.KeyNames, count)
	case *Order:
		return fmt.Sprintf("Order(%d keys)%s", len(node.Keys), count)
	case *Limit:
		return fmt.Sprintf("Limit(%d)%s", node.N, count)
	default:
		return "Unknown"
	}
}
