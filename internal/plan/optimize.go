package plan

import (
	"linal/internal/eval"
	"linal/internal/index"
)

// Optimize turns a logical plan into a physical one: constant folding,
// predicate pushdown into IndexScan/VectorScan where a matching index
// exists, projection pruning, and index selection among several
// candidates (vector index only under a LIMIT, otherwise hash-equality
// over a full scan).
func Optimize(root Node, indexes AvailableIndexes) Node {
	root = foldNode(root)
	root = pushdownVectorTopK(root, indexes)
	root = pushdownPredicate(root, indexes)
	root = pruneProjection(root, nil)
	return root
}

// --- constant folding -------------------------------------------------

func foldExpr(e eval.Expr) eval.Expr {
	switch n := e.(type) {
	case *eval.Binary:
		n.Left = foldExpr(n.Left)
		n.Right = foldExpr(n.Right)
		return tryFold(n)
	case *eval.Unary:
		n.Operand = foldExpr(n.Operand)
		return tryFold(n)
	case *eval.Call:
		for i, a := range n.Args {
			n.Args[i] = foldExpr(a)
		}
		return n
	case *eval.TensorIndex:
		n.Target = foldExpr(n.Target)
		return n
	default:
		return e
	}
}

// tryFold evaluates e against an empty environment when every operand is
// already a Literal, replacing it with its folded result. Any evaluation
// error (e.g. division by zero) is left for the executor to raise at
// runtime rather than at plan time.
func tryFold(e eval.Expr) eval.Expr {
	if !allLiteral(e) {
		return e
	}
	v, err := eval.Eval(e, &eval.MapEnvironment{})
	if err != nil {
		return e
	}
	return &eval.Literal{Value: v}
}

func allLiteral(e eval.Expr) bool {
	switch n := e.(type) {
	case *eval.Literal:
		return true
	case *eval.Binary:
		return allLiteral(n.Left) && allLiteral(n.Right)
	case *eval.Unary:
		return allLiteral(n.Operand)
	default:
		return false
	}
}

func foldNode(n Node) Node {
	switch node := n.(type) {
	case *Scan:
		return node
	case *Filter:
		node.Input = foldNode(node.Input)
		node.Pred = foldExpr(node.Pred)
		return node
	case *Project:
		node.Input = foldNode(node.Input)
		for i, e := range node.Exprs {
			node.Exprs[i] = foldExpr(e)
		}
		return node
	case *GroupBy:
		node.Input = foldNode(node.Input)
		for i, k := range node.Keys {
			node.Keys[i] = foldExpr(k)
		}
		if node.Having != nil {
			node.Having = foldExpr(node.Having)
		}
		return node
	case *Order:
		node.Input = foldNode(node.Input)
		for i := range node.Keys {
			node.Keys[i].Expr = foldExpr(node.Keys[i].Expr)
		}
		return node
	case *Limit:
		node.Input = foldNode(node.Input)
		return node
	default:
		return n
	}
}

// --- predicate pushdown (equality → IndexScan) -------------------------

// splitConjuncts flattens a chain of AND-ed expressions into its leaves.
func splitConjuncts(e eval.Expr) []eval.Expr {
	if b, ok := e.(*eval.Binary); ok && b.Op == eval.OpAnd {
		return append(splitConjuncts(b.Left), splitConjuncts(b.Right)...)
	}
	return []eval.Expr{e}
}

// equalityConjunct reports whether conj is `ColumnRef = Literal` (in
// either operand order), returning the column name and literal.
func equalityConjunct(conj eval.Expr) (string, *eval.Literal, bool) {
	b, ok := conj.(*eval.Binary)
	if !ok || b.Op != eval.OpEq {
		return "", nil, false
	}
	if col, ok := b.Left.(*eval.ColumnRef); ok {
		if lit, ok := b.Right.(*eval.Literal); ok {
			return col.Name, lit, true
		}
	}
	if col, ok := b.Right.(*eval.ColumnRef); ok {
		if lit, ok := b.Left.(*eval.Literal); ok {
			return col.Name, lit, true
		}
	}
	return "", nil, false
}

func pushdownPredicate(n Node, indexes AvailableIndexes) Node {
	switch node := n.(type) {
	case *Filter:
		scan, ok := node.Input.(*Scan)
		if !ok {
			node.Input = pushdownPredicate(node.Input, indexes)
			return node
		}
		conjuncts := splitConjuncts(node.Pred)
		for i, conj := range conjuncts {
			col, lit, ok := equalityConjunct(conj)
			if !ok {
				continue
			}
			candidates := indexes.ByColumn[col]
			var hashIdx index.Index
			for _, c := range candidates {
				if c.Kind() == "hash" {
					hashIdx = c
					break
				}
			}
			if hashIdx == nil {
				continue
			}
			remaining := append(conjuncts[:i:i], conjuncts[i+1:]...)
			scanNode := &IndexScan{Dataset: scan.Dataset, Index: hashIdx.Name(), Column: col, Literal: lit, Columns: scan.Columns}
			if len(remaining) == 0 {
				return scanNode
			}
			return &Filter{Input: scanNode, Pred: conjoin(remaining)}
		}
		return node
	case *Project:
		node.Input = pushdownPredicate(node.Input, indexes)
		return node
	case *GroupBy:
		node.Input = pushdownPredicate(node.Input, indexes)
		return node
	case *Order:
		node.Input = pushdownPredicate(node.Input, indexes)
		return node
	case *Limit:
		node.Input = pushdownPredicate(node.Input, indexes)
		return node
	default:
		return n
	}
}

func conjoin(exprs []eval.Expr) eval.Expr {
	out := exprs[0]
	for _, e := range exprs[1:] {
		out = &eval.Binary{Op: eval.OpAnd, Left: out, Right: e}
	}
	return out
}

// --- vector top-K pushdown ---------------------------------------------

// pushdownVectorTopK rewrites Limit(Order(Scan)) into a VectorScan(k)
// when the sole Order key is COSINE(column, literal) descending and the
// column has a vector index: the index's own KNN already returns results
// in the right order, so both Order and Limit are subsumed.
func pushdownVectorTopK(n Node, indexes AvailableIndexes) Node {
	limit, ok := n.(*Limit)
	if !ok {
		return descendVectorTopK(n, indexes)
	}
	order, ok := limit.Input.(*Order)
	if !ok || len(order.Keys) != 1 || order.Keys[0].Dir != Desc {
		limit.Input = pushdownVectorTopK(limit.Input, indexes)
		return limit
	}
	call, ok := order.Keys[0].Expr.(*eval.Call)
	if !ok || !isCosineCall(call.Name) || len(call.Args) != 2 {
		limit.Input = pushdownVectorTopK(order, indexes)
		return limit
	}
	col, lit, ok := vectorColumnArg(call)
	if !ok {
		limit.Input = pushdownVectorTopK(order, indexes)
		return limit
	}
	scan, ok := order.Input.(*Scan)
	if !ok {
		limit.Input = pushdownVectorTopK(order, indexes)
		return limit
	}
	var vecIdx index.Index
	for _, c := range indexes.ByColumn[col] {
		if vi, ok := c.(*index.VectorIndex); ok && vi.Metric() == index.MetricCosine {
			vecIdx = c
			break
		}
	}
	if vecIdx == nil {
		limit.Input = pushdownVectorTopK(order, indexes)
		return limit
	}
	return &VectorScan{Dataset: scan.Dataset, Index: vecIdx.Name(), Column: col, Query: lit, K: limit.N, Columns: scan.Columns}
}

func descendVectorTopK(n Node, indexes AvailableIndexes) Node {
	switch node := n.(type) {
	case *Filter:
		node.Input = pushdownVectorTopK(node.Input, indexes)
		return node
	case *Project:
		node.Input = pushdownVectorTopK(node.Input, indexes)
		return node
	case *GroupBy:
		node.Input = pushdownVectorTopK(node.Input, indexes)
		return node
	case *Order:
		node.Input = pushdownVectorTopK(node.Input, indexes)
		return node
	default:
		return n
	}
}

func isCosineCall(name string) bool {
	return name == "cosine" || name == "COSINE" || name == "Cosine"
}

func vectorColumnArg(call *eval.Call) (string, eval.Expr, bool) {
	if col, ok := call.Args[0].(*eval.ColumnRef); ok {
		return col.Name, call.Args[1], true
	}
	if col, ok := call.Args[1].(*eval.ColumnRef); ok {
		return col.Name, call.Args[0], true
	}
	return "", nil, false
}

// --- projection pruning -------------------------------------------------

// pruneProjection annotates Scan/IndexScan/VectorScan nodes with the
// minimal column set required by everything above them. required is nil
// for "all columns needed" (e.g. under a bare Scan with no Project atop
// it).
func pruneProjection(n Node, required []string) Node {
	switch node := n.(type) {
	case *Scan:
		if required != nil {
			node.Columns = required
		}
		return node
	case *IndexScan:
		if required != nil {
			node.Columns = dedupAppend(required, node.Column)
		}
		return node
	case *VectorScan:
		if required != nil {
			node.Columns = dedupAppend(required, node.Column)
		}
		return node
	case *Filter:
		need := required
		if required != nil {
			need = dedupAppend(required, exprColumns(node.Pred)...)
		}
		node.Input = pruneProjection(node.Input, need)
		return node
	case *Project:
		need := exprColumns(node.Exprs...)
		node.Input = pruneProjection(node.Input, need)
		return node
	case *GroupBy:
		need := exprColumns(node.Keys...)
		for _, a := range node.Aggs {
			if a.Expr != nil {
				need = append(need, exprColumns(a.Expr)...)
			}
		}
		node.Input = pruneProjection(node.Input, need)
		return node
	case *Order:
		need := required
		if required != nil {
			for _, k := range node.Keys {
				need = append(need, exprColumns(k.Expr)...)
			}
		}
		node.Input = pruneProjection(node.Input, need)
		return node
	case *Limit:
		node.Input = pruneProjection(node.Input, required)
		return node
	default:
		return n
	}
}

func dedupAppend(base []string, more ...string) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(more))
	for _, c := range base {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range more {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func exprColumns(exprs ...eval.Expr) []string {
	var out []string
	var walk func(eval.Expr)
	walk = func(e eval.Expr) {
		switch n := e.(type) {
		case *eval.ColumnRef:
			out = append(out, n.Name)
		case *eval.Binary:
			walk(n.Left)
			walk(n.Right)
		case *eval.Unary:
			walk(n.Operand)
		case *eval.Call:
			for _, a := range n.Args {
				walk(a)
			}
		case *eval.TensorIndex:
			walk(n.Target)
		case *eval.TupleField:
			walk(n.Base)
		}
	}
	for _, e := range exprs {
		if e != nil {
			walk(e)
		}
	}
	return out
}
