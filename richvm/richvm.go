// Package richvm implements the backtracking, graph-walking "rich"
// interpreter (spec.md §4.9): unlike poorvm it honors anchors, Nop
// transitions, and transition priority directly against the automaton
// graph, at the cost of needing an explicit save/restore stack for
// states with more than one live alternative.
//
// Grounded on original_source's RichInterpreter (src/regex_interpreter.cpp).
package richvm

import "github.com/bytekleene/kleene/automaton"

// InvalidState marks a failed search.
const InvalidState int32 = -1

// Program is a compiled backtracking matcher.
type Program struct {
	nfa            *automaton.Automaton
	needsBacktrack []bool // indexed by automaton.StateID
}

// Result mirrors spec.md §6's match result shape.
type Result struct {
	Start          int
	Length         int // -1 when no accept was reached
	TerminateState int32
	AcceptedState  int32 // InvalidState on failure
}

// Build precomputes, for every state, whether matching past it can
// require a saved backtrack point: a state needs one when it has more
// than one non-Chars outgoing edge, or at least one non-Chars edge
// alongside at least one Chars edge (spec.md §3).
func Build(dfa *automaton.Automaton) *Program {
	nb := make([]bool, len(dfa.States))
	for i := range dfa.States {
		var charEdges, nonCharEdges int
		for _, tid := range dfa.States[i].Outbounds {
			if dfa.Transition(tid).Kind == automaton.Chars {
				charEdges++
			} else {
				nonCharEdges++
			}
		}
		nb[i] = nonCharEdges > 1 || (nonCharEdges >= 1 && charEdges >= 1)
	}
	return &Program{nfa: dfa, needsBacktrack: nb}
}

// cursor is the rich interpreter's walking position: which state it is
// in, how far into the input it has read, and which of that state's
// outbound transitions to try next.
type cursor struct {
	state automaton.StateID
	pos   int
	idx   int
}

// SearchHead walks the automaton graph anchored at offset, trying
// transitions in priority (outbounds insertion) order and backtracking
// to the most recent unexplored alternative on a dead end.
func (p *Program) SearchHead(input []byte, offset int) Result {
	a := p.nfa
	current := cursor{state: a.Start, pos: offset, idx: 0}
	var stack []cursor

	for {
		outbounds := a.State(current.state).Outbounds
		found := false
		for current.idx < len(outbounds) {
			t := a.Transition(outbounds[current.idx])
			ok, consumes := p.tryTransition(t, input, current.pos)
			if !ok {
				current.idx++
				continue
			}
			found = true
			if p.needsBacktrack[current.state] {
				stack = append(stack, cursor{state: current.state, pos: current.pos, idx: current.idx + 1})
			}
			nextPos := current.pos
			if consumes {
				nextPos++
			}
			current = cursor{state: t.Target, pos: nextPos, idx: 0}
			break
		}

		if a.State(current.state).Accepted && (!found || current.pos == len(input)) {
			return Result{
				Start:          offset,
				Length:         current.pos - offset,
				TerminateState: int32(current.state),
				AcceptedState:  int32(current.state),
			}
		}

		if !found {
			if len(stack) == 0 {
				return Result{Start: offset, Length: -1, TerminateState: int32(current.state), AcceptedState: InvalidState}
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}
}

func (p *Program) tryTransition(t *automaton.Transition, input []byte, pos int) (ok, consumes bool) {
	switch t.Kind {
	case automaton.Chars:
		if pos < len(input) && t.Range.Contains(input[pos]) {
			return true, true
		}
		return false, false
	case automaton.Nop:
		return true, false
	case automaton.BeginString:
		return pos == 0, false
	case automaton.EndString:
		return pos == len(input), false
	default:
		return false, false
	}
}

// Search tries SearchHead at increasing offsets starting from offset
// until one succeeds or the input is exhausted.
func (p *Program) Search(input []byte, offset int) Result {
	for o := offset; o <= len(input); o++ {
		r := p.SearchHead(input, o)
		if r.AcceptedState != InvalidState {
			return r
		}
	}
	return Result{Start: offset, Length: -1, TerminateState: InvalidState, AcceptedState: InvalidState}
}

// Match reports whether input is accepted in its entirety starting at
// offset 0.
func (p *Program) Match(input []byte) bool {
	r := p.SearchHead(input, 0)
	return r.AcceptedState != InvalidState && r.Length == len(input)
}
