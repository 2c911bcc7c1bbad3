package charset

import "github.com/bytekleene/kleene/ast"

// Unify builds the global disjoint alphabet across every Set node
// reachable from n and rewrites each Set's child to the disjunction of
// exactly the alphabet atoms fully contained in one of its own
// (already normalized) ranges (spec.md §4.3). Normalize must have run
// first: Unify assumes every Set is already non-complementary with
// disjoint leaves.
func Unify(n *ast.Node) {
	var all []Range
	collectAllSetRanges(n, &all)
	atoms := Partition(all)
	rewriteSets(n, atoms)
}

func collectAllSetRanges(n *ast.Node, out *[]Range) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindSet:
		*out = append(*out, collectRanges(n.Child)...)
	case ast.KindRepeat:
		collectAllSetRanges(n.Child, out)
	case ast.KindConcatenation, ast.KindSelect:
		collectAllSetRanges(n.Left, out)
		collectAllSetRanges(n.Right, out)
	}
}

func rewriteSets(n *ast.Node, atoms []Range) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindSet:
		own := collectRanges(n.Child)
		var contained []Range
		for _, atom := range atoms {
			for _, r := range own {
				if r.containsRange(atom) {
					contained = append(contained, atom)
					break
				}
			}
		}
		n.Child = chain(contained)
	case ast.KindRepeat:
		rewriteSets(n.Child, atoms)
	case ast.KindConcatenation, ast.KindSelect:
		rewriteSets(n.Left, atoms)
		rewriteSets(n.Right, atoms)
	}
}
