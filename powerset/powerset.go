// Package powerset implements the subset/powerset construction that
// turns an ε-NFA into a DFA (or, under the rich epsilon checker, a
// pseudo-DFA that keeps anchors and Nop edges as real transitions).
//
// Grounded on original_source's epsilonClosure/subset functions
// (src/automaton.cpp): closures are computed as ORDERED NFA-state
// sequences in first-visit order, not unordered sets, because that
// order is the priority order the rich interpreter later depends on.
package powerset

import (
	"encoding/binary"

	"github.com/bytekleene/kleene/automaton"
	"github.com/bytekleene/kleene/charset"
	"github.com/bytekleene/kleene/internal/sparse"
)

// EpsilonChecker decides whether a transition kind is collapsed during
// closure computation (true) or kept as a real DFA transition (false).
type EpsilonChecker func(automaton.TransitionKind) bool

// Poor collapses both Epsilon and Nop; the resulting DFA never
// contains Nop transitions. BeginString and EndString are not
// collapsed: they survive as labeled DFA transitions, and poorvm.Build
// rejects a DFA containing them with ErrInvalidForPoorInterpreter.
func Poor(k automaton.TransitionKind) bool {
	return k == automaton.Epsilon || k == automaton.Nop
}

// Rich collapses only Epsilon; BeginString, EndString, and Nop survive
// as labeled DFA transitions.
func Rich(k automaton.TransitionKind) bool {
	return k == automaton.Epsilon
}

type label struct {
	kind   automaton.TransitionKind
	lo, hi byte
}

// closure computes the epsilon-closure of a set of NFA states: the
// ordered (first-visit) list of states reached via checker-eligible
// transitions, whether any of them accepts, and the non-eligible
// outbound transitions grouped by (kind, range) label in first-
// occurrence order with their targets merged.
func closure(nfa *automaton.Automaton, roots []automaton.StateID, checker EpsilonChecker) (ordered []automaton.StateID, accepted bool, order []label, targets map[label][]automaton.StateID) {
	visited := sparse.NewSparseSet(uint32(len(nfa.States)))
	targets = map[label][]automaton.StateID{}

	var dfs func(s automaton.StateID) bool
	dfs = func(s automaton.StateID) bool {
		isAccepted := nfa.State(s).Accepted
		if visited.Contains(uint32(s)) {
			return isAccepted
		}
		visited.Insert(uint32(s))
		ordered = append(ordered, s)
		for _, tid := range nfa.State(s).Outbounds {
			t := nfa.Transition(tid)
			if checker(t.Kind) {
				if dfs(t.Target) {
					isAccepted = true
				}
				continue
			}
			lbl := label{kind: t.Kind, lo: t.Range.Lo, hi: t.Range.Hi}
			if len(targets[lbl]) == 0 {
				order = append(order, lbl)
			}
			targets[lbl] = append(targets[lbl], t.Target)
		}
		return isAccepted
	}

	for _, r := range roots {
		if dfs(r) {
			accepted = true
		}
	}
	return
}

func closureKey(states []automaton.StateID) string {
	buf := make([]byte, len(states)*4)
	for i, s := range states {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(s))
	}
	return string(buf)
}

type pending struct {
	dfaState automaton.StateID
	order    []label
	targets  map[label][]automaton.StateID
}

// Build runs the powerset construction over nfa using checker to
// decide which transition kinds are collapsed during closure, and
// returns a freshly built automaton — one state per distinct ordered
// closure set, discovered by a BFS that preserves each state's label
// insertion order (first ε-path encountered wins the tie for
// priority).
func Build(nfa *automaton.Automaton, checker EpsilonChecker) *automaton.Automaton {
	dfa := automaton.New()
	seen := map[string]automaton.StateID{}

	startOrdered, startAccepted, startOrder, startTargets := closure(nfa, []automaton.StateID{nfa.Start}, checker)
	dfa.Start = dfa.AddState()
	dfa.State(dfa.Start).Accepted = startAccepted
	seen[closureKey(startOrdered)] = dfa.Start

	queue := []pending{{dfaState: dfa.Start, order: startOrder, targets: startTargets}}

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, lbl := range cur.order {
			merged := cur.targets[lbl]
			childOrdered, childAccepted, childOrder, childTargets := closure(nfa, merged, checker)
			key := closureKey(childOrdered)
			childState, ok := seen[key]
			if !ok {
				childState = dfa.AddState()
				dfa.State(childState).Accepted = childAccepted
				seen[key] = childState
				queue = append(queue, pending{dfaState: childState, order: childOrder, targets: childTargets})
			}
			switch lbl.kind {
			case automaton.Chars:
				dfa.AddChars(cur.dfaState, childState, charset.Range{Lo: lbl.lo, Hi: lbl.hi})
			case automaton.BeginString:
				dfa.AddBeginString(cur.dfaState, childState)
			case automaton.EndString:
				dfa.AddEndString(cur.dfaState, childState)
			case automaton.Nop:
				dfa.AddNop(cur.dfaState, childState)
			}
		}
	}

	return dfa
}
