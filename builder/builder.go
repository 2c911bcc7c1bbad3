// Package builder is the programmatic combinator surface from spec.md
// §6: an alternative to the textual parser for callers that want to
// assemble an AST directly.
package builder

import (
	"errors"

	"github.com/bytekleene/kleene/ast"
)

// ErrMalformedSetForComplement is returned by Complement when applied
// to a node that isn't a Set (spec.md §7).
var ErrMalformedSetForComplement = errors.New("builder: Complement applied to a non-Set node")

// ErrInvalidSetOperand is returned by Union when either operand isn't
// a non-complementary Set node.
var ErrInvalidSetOperand = errors.New("builder: Union requires two non-complementary Set nodes")

// Lit builds a literal byte-string match. An empty string returns nil
// (matches the empty string, same convention as ast.Parse("")).
func Lit(s string) *ast.Node {
	if len(s) == 0 {
		return nil
	}
	node := ast.CharRange(s[len(s)-1], s[len(s)-1])
	for i := len(s) - 2; i >= 0; i-- {
		node = ast.Concat(ast.CharRange(s[i], s[i]), node)
	}
	return node
}

// Range builds a bracket class over a single inclusive byte range.
func Range(lo, hi byte) *ast.Node {
	return ast.SetNode(ast.CharRange(lo, hi), false)
}

// Concat sequences nodes left to right, skipping nils.
func Concat(nodes ...*ast.Node) *ast.Node {
	var out *ast.Node
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i] == nil {
			continue
		}
		if out == nil {
			out = nodes[i]
		} else {
			out = ast.Concat(nodes[i], out)
		}
	}
	return out
}

// Alt builds an alternation across nodes, in priority order.
func Alt(nodes ...*ast.Node) *ast.Node {
	var out *ast.Node
	for i := len(nodes) - 1; i >= 0; i-- {
		if out == nil {
			out = nodes[i]
		} else {
			out = ast.Select(nodes[i], out)
		}
	}
	return out
}

// ZeroOrMore builds a greedy "*" repetition.
func ZeroOrMore(n *ast.Node) *ast.Node { return ast.Repeat(n, 0, -1, true) }

// OneOrMore builds a greedy "+" repetition.
func OneOrMore(n *ast.Node) *ast.Node { return ast.Repeat(n, 1, -1, true) }

// ZeroOrOne builds a greedy "?" repetition.
func ZeroOrOne(n *ast.Node) *ast.Node { return ast.Repeat(n, 0, 1, true) }

// Repeat builds an explicit {min,max} repetition; max == -1 means
// unbounded.
func Repeat(n *ast.Node, min, max int, greedy bool) *ast.Node {
	return ast.Repeat(n, min, max, greedy)
}

// Union merges two non-complementary Set nodes into one Set matching
// either's content.
func Union(a, b *ast.Node) (*ast.Node, error) {
	if a == nil || b == nil || a.Kind != ast.KindSet || b.Kind != ast.KindSet || a.Complement || b.Complement {
		return nil, ErrInvalidSetOperand
	}
	return ast.SetNode(ast.Select(a.Child, b.Child), false), nil
}

// Complement flips a Set node's polarity.
func Complement(n *ast.Node) (*ast.Node, error) {
	if n == nil || n.Kind != ast.KindSet {
		return nil, ErrMalformedSetForComplement
	}
	return ast.SetNode(n.Child, !n.Complement), nil
}

// Begin builds a start-of-string anchor.
func Begin() *ast.Node { return ast.Begin() }

// End builds an end-of-string anchor.
func End() *ast.Node { return ast.End() }

// AnyChar matches any byte except NUL.
func AnyChar() *ast.Node { return Range(0x01, 0xFF) }

// Digit matches [0-9].
func Digit() *ast.Node { return Range('0', '9') }

// Letter matches [A-Za-z_].
func Letter() *ast.Node {
	return ast.SetNode(ast.Select(ast.CharRange('A', 'Z'), ast.Select(ast.CharRange('a', 'z'), ast.CharRange('_', '_'))), false)
}

// Word matches [A-Za-z0-9_].
func Word() *ast.Node {
	return ast.SetNode(
		ast.Select(ast.CharRange('A', 'Z'),
			ast.Select(ast.CharRange('a', 'z'),
				ast.Select(ast.CharRange('0', '9'), ast.CharRange('_', '_')))),
		false)
}
