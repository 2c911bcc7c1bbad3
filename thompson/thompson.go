// Package thompson builds an ε-NFA from a normalized, unified pattern
// AST, following the classical Thompson construction extended with
// explicit Nop transitions to encode greedy/lazy repetition priority
// (spec.md §4.4).
//
// Grounded on original_source's EpsilonNfaVisitor (src/regex_algorithm.cpp).
package thompson

import (
	"github.com/bytekleene/kleene/ast"
	"github.com/bytekleene/kleene/automaton"
	"github.com/bytekleene/kleene/charset"
)

// fragment is a sub-NFA under construction: every state reachable from
// start eventually reaches finish, and finish has no outgoing edges
// yet (the caller wires those).
type fragment struct {
	start, finish automaton.StateID
}

var empty = fragment{start: automaton.InvalidState, finish: automaton.InvalidState}

// Build compiles a normalized+unified AST into a fresh ε-NFA with a
// single start state and a single accepting state. A nil node (the
// empty pattern) compiles to an automaton that accepts only the empty
// string — a degenerate case the grammar itself cannot produce but
// Parse("") does.
func Build(n *ast.Node) *automaton.Automaton {
	a := automaton.New()
	frag := build(a, n)
	if frag.start == automaton.InvalidState {
		s := a.AddState()
		frag = fragment{start: s, finish: s}
	}
	a.Start = frag.start
	a.State(frag.finish).Accepted = true
	return a
}

func build(a *automaton.Automaton, n *ast.Node) fragment {
	if n == nil {
		return empty
	}
	switch n.Kind {
	case ast.KindCharRange:
		start, finish := a.AddState(), a.AddState()
		a.AddChars(start, finish, charset.Range{Lo: n.Lo, Hi: n.Hi})
		return fragment{start, finish}

	case ast.KindBegin:
		start, finish := a.AddState(), a.AddState()
		a.AddBeginString(start, finish)
		return fragment{start, finish}

	case ast.KindEnd:
		start, finish := a.AddState(), a.AddState()
		a.AddEndString(start, finish)
		return fragment{start, finish}

	case ast.KindConcatenation:
		left := build(a, n.Left)
		right := build(a, n.Right)
		return connect(a, left, right)

	case ast.KindSelect:
		left := build(a, n.Left)
		right := build(a, n.Right)
		start, finish := a.AddState(), a.AddState()
		a.AddEpsilon(start, left.start)
		a.AddEpsilon(start, right.start)
		a.AddEpsilon(left.finish, finish)
		a.AddEpsilon(right.finish, finish)
		return fragment{start, finish}

	case ast.KindSet:
		if n.Child == nil {
			s := a.AddState()
			return fragment{s, s}
		}
		return build(a, n.Child)

	case ast.KindRepeat:
		return buildRepeat(a, n)

	default:
		return empty
	}
}

// connect sequences two fragments with an Epsilon edge. An empty left
// fragment (min == 0 repetitions unrolled so far) degenerates to
// returning right unchanged.
func connect(a *automaton.Automaton, left, right fragment) fragment {
	if left.start == automaton.InvalidState {
		return right
	}
	if right.start == automaton.InvalidState {
		return left
	}
	a.AddEpsilon(left.finish, right.start)
	return fragment{left.start, right.finish}
}

func buildRepeat(a *automaton.Automaton, n *ast.Node) fragment {
	nfa := empty
	for i := 0; i < n.Min; i++ {
		nfa = connect(a, nfa, build(a, n.Child))
	}

	switch {
	case n.Max == -1:
		if nfa.start == automaton.InvalidState {
			s := a.AddState()
			nfa = fragment{s, s}
		}
		replica := build(a, n.Child)
		begin, end := nfa.finish, a.AddState()
		if n.Greedy {
			a.AddEpsilon(begin, replica.start)
			a.AddEpsilon(replica.finish, begin)
			a.AddNop(begin, end)
		} else {
			a.AddNop(begin, end)
			a.AddEpsilon(begin, replica.start)
			a.AddEpsilon(replica.finish, begin)
		}
		nfa.finish = end

	case n.Max > n.Min:
		for i := n.Min; i < n.Max; i++ {
			replica := build(a, n.Child)
			begin, end := a.AddState(), a.AddState()
			if n.Greedy {
				a.AddEpsilon(begin, replica.start)
				a.AddEpsilon(replica.finish, end)
				a.AddNop(begin, end)
			} else {
				a.AddNop(begin, end)
				a.AddEpsilon(begin, replica.start)
				a.AddEpsilon(replica.finish, end)
			}
			nfa = connect(a, nfa, fragment{begin, end})
		}
	}

	if nfa.start == automaton.InvalidState {
		s := a.AddState()
		nfa = fragment{s, s}
	}
	return nfa
}
