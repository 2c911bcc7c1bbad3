package charset

import "github.com/bytekleene/kleene/ast"

// Normalize rewrites every Set node reachable from n in place so that
// its child is a disjunction of disjoint, sorted CharRange leaves and
// Complement is false (spec.md §4.2). It is grounded on the original
// source's SetNormalizationVisitor: a complementary set is rewritten to
// the gap ranges of its own (disjoint) content within [0x01,0xFF]; a
// non-complementary set is rewritten to the disjoint partition of its
// own leaves.
func Normalize(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindRepeat:
		Normalize(n.Child)
	case ast.KindConcatenation, ast.KindSelect:
		Normalize(n.Left)
		Normalize(n.Right)
	case ast.KindSet:
		normalizeSet(n)
	}
}

func normalizeSet(n *ast.Node) {
	leaves := collectRanges(n.Child)
	disjoint := Partition(leaves)
	if n.Complement {
		n.Child = chain(Complement(disjoint))
	} else {
		n.Child = chain(disjoint)
	}
	n.Complement = false
}

// collectRanges gathers the CharRange leaves of a Set's alternation
// chain (built by the parser as a right-leaning Select chain, or a
// lone CharRange, or nil for an empty class).
func collectRanges(n *ast.Node) []Range {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindCharRange:
		return []Range{{Lo: n.Lo, Hi: n.Hi}}
	case ast.KindSelect:
		return append(collectRanges(n.Left), collectRanges(n.Right)...)
	default:
		return nil
	}
}

// chain rebuilds a disjunction of CharRange leaves from a sorted range
// list, right-leaning like the parser's own SetItems chain. Returns
// nil for an empty list (an empty, unsatisfiable class).
func chain(ranges []Range) *ast.Node {
	if len(ranges) == 0 {
		return nil
	}
	node := ast.CharRange(ranges[len(ranges)-1].Lo, ranges[len(ranges)-1].Hi)
	for i := len(ranges) - 2; i >= 0; i-- {
		node = ast.Select(ast.CharRange(ranges[i].Lo, ranges[i].Hi), node)
	}
	return node
}
