// Package literal extracts the unconditional literal run(s) a pattern
// begins with, used to drive a prefilter.Prefilter ahead of the main
// interpreter (SPEC_FULL.md §4.11). Grounded on the teacher's
// literal/extractor.go, generalized from UTF-8 runes to bytes.
package literal

import (
	"github.com/bytekleene/kleene/ast"
	"github.com/bytekleene/kleene/charset"
)

// Required returns the fixed-byte prefix that every match of n
// unconditionally starts with. It stops at the first construct that
// isn't a deterministic single byte: a Select, a Repeat (even Min>0,
// since a bounded repeat's body is still a choice point once Max>Min,
// and a Min==Max>0 repeat of a literal is left to the caller to unroll
// via Lit+Repeat instead), an anchor, or a Set spanning more than one
// byte value. Returns nil if n has no such prefix at all.
func Required(n *ast.Node) []byte {
	lit, _ := requiredRun(n)
	return lit
}

// IsWhole reports whether n is entirely a fixed literal run (so a
// prefilter hit at that run is itself a complete match, with nothing
// left for the interpreter to verify).
func IsWhole(n *ast.Node) bool {
	_, whole := requiredRun(n)
	return whole
}

func requiredRun(n *ast.Node) (out []byte, whole bool) {
	cur := n
	for cur != nil {
		var b byte
		var ok bool
		var rest *ast.Node
		if cur.Kind == ast.KindConcatenation {
			b, ok = literalByte(cur.Left)
			rest = cur.Right
		} else {
			b, ok = literalByte(cur)
			rest = nil
		}
		if !ok {
			return out, false
		}
		out = append(out, b)
		cur = rest
	}
	return out, true
}

func literalByte(n *ast.Node) (byte, bool) {
	if n == nil {
		return 0, false
	}
	switch n.Kind {
	case ast.KindCharRange:
		if n.Lo == n.Hi {
			return n.Lo, true
		}
		return 0, false
	case ast.KindSet:
		if n.Complement {
			return 0, false
		}
		return setSingletonByte(n)
	default:
		return 0, false
	}
}

func setSingletonByte(n *ast.Node) (byte, bool) {
	leaves := leafRanges(n.Child)
	if len(leaves) != 1 || leaves[0].Lo != leaves[0].Hi {
		return 0, false
	}
	return leaves[0].Lo, true
}

func leafRanges(n *ast.Node) []charset.Range {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindCharRange:
		return []charset.Range{{Lo: n.Lo, Hi: n.Hi}}
	case ast.KindSelect:
		return append(leafRanges(n.Left), leafRanges(n.Right)...)
	default:
		return nil
	}
}

// LeadingAlternatives returns the required literal run of every branch
// of a top-level Select chain, when every branch has a non-empty one
// (e.g. "cat|dog|bird"). Returns nil if n isn't a Select, or any
// branch lacks an unconditional literal run.
func LeadingAlternatives(n *ast.Node) [][]byte {
	if n == nil || n.Kind != ast.KindSelect {
		return nil
	}
	var branches []*ast.Node
	collectSelectBranches(n, &branches)

	out := make([][]byte, 0, len(branches))
	for _, b := range branches {
		lit := Required(b)
		if len(lit) == 0 {
			return nil
		}
		out = append(out, lit)
	}
	return out
}

func collectSelectBranches(n *ast.Node, out *[]*ast.Node) {
	if n.Kind == ast.KindSelect {
		collectSelectBranches(n.Left, out)
		collectSelectBranches(n.Right, out)
		return
	}
	*out = append(*out, n)
}
