// Package hopcroft minimizes a DFA by partition refinement (spec.md
// §4.6), plus the Brzozowski double-reverse alternative built from
// automaton.Reverse/Reverse and powerset.Build.
//
// Grounded on original_source's split/Hopcroft/Brzozowski functions
// (src/automaton.cpp).
package hopcroft

import (
	"fmt"
	"strings"

	"github.com/bytekleene/kleene/automaton"
	"github.com/bytekleene/kleene/powerset"
)

type label struct {
	kind   automaton.TransitionKind
	lo, hi byte
}

// Minimize returns a new, minimal automaton accepting the same
// language as dfa (dfa itself is left untouched).
func Minimize(dfa *automaton.Automaton) *automaton.Automaton {
	universe := labelUniverse(dfa)

	blocks, blockOf := initialPartition(dfa)
	for {
		var nextBlocks [][]automaton.StateID
		nextBlockOf := make(map[automaton.StateID]int, len(blockOf))
		changed := false
		for _, b := range blocks {
			groups := split(b, dfa, blockOf, universe)
			if len(groups) > 1 {
				changed = true
			}
			for _, g := range groups {
				idx := len(nextBlocks)
				nextBlocks = append(nextBlocks, g)
				for _, s := range g {
					nextBlockOf[s] = idx
				}
			}
		}
		blocks, blockOf = nextBlocks, nextBlockOf
		if !changed {
			break
		}
	}

	return rebuild(dfa, blocks, blockOf)
}

func labelUniverse(dfa *automaton.Automaton) []label {
	seen := map[label]bool{}
	var universe []label
	for _, t := range dfa.Transitions {
		l := label{t.Kind, t.Range.Lo, t.Range.Hi}
		if !seen[l] {
			seen[l] = true
			universe = append(universe, l)
		}
	}
	return universe
}

func initialPartition(dfa *automaton.Automaton) ([][]automaton.StateID, map[automaton.StateID]int) {
	var accepting, rejecting []automaton.StateID
	for i := range dfa.States {
		id := automaton.StateID(i)
		if dfa.States[id].Accepted {
			accepting = append(accepting, id)
		} else {
			rejecting = append(rejecting, id)
		}
	}
	var blocks [][]automaton.StateID
	if len(accepting) > 0 {
		blocks = append(blocks, accepting)
	}
	if len(rejecting) > 0 {
		blocks = append(blocks, rejecting)
	}
	blockOf := make(map[automaton.StateID]int, len(dfa.States))
	for i, b := range blocks {
		for _, s := range b {
			blockOf[s] = i
		}
	}
	return blocks, blockOf
}

// split partitions block by the signature state -> (for each label in
// universe, the block containing its target, or "none"). Order within
// each sub-block is preserved from the input order.
func split(block []automaton.StateID, dfa *automaton.Automaton, blockOf map[automaton.StateID]int, universe []label) [][]automaton.StateID {
	if len(block) < 2 {
		return [][]automaton.StateID{block}
	}

	var order []string
	groups := map[string][]automaton.StateID{}
	for _, s := range block {
		targetBlock := map[label]int{}
		for _, tid := range dfa.State(s).Outbounds {
			t := dfa.Transition(tid)
			targetBlock[label{t.Kind, t.Range.Lo, t.Range.Hi}] = blockOf[t.Target]
		}
		var sig strings.Builder
		for _, l := range universe {
			if b, ok := targetBlock[l]; ok {
				fmt.Fprintf(&sig, "%d,", b)
			} else {
				sig.WriteString("-1,")
			}
		}
		key := sig.String()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
	}

	result := make([][]automaton.StateID, len(order))
	for i, key := range order {
		result[i] = groups[key]
	}
	return result
}

func rebuild(dfa *automaton.Automaton, blocks [][]automaton.StateID, blockOf map[automaton.StateID]int) *automaton.Automaton {
	out := automaton.New()
	blockState := make([]automaton.StateID, len(blocks))
	for i, b := range blocks {
		s := out.AddState()
		blockState[i] = s
		accepted := false
		for _, old := range b {
			if dfa.State(old).Accepted {
				accepted = true
			}
			if old == dfa.Start {
				out.Start = s
			}
		}
		out.State(s).Accepted = accepted
	}

	for i, b := range blocks {
		rep := b[0]
		src := blockState[i]
		for _, tid := range dfa.State(rep).Outbounds {
			t := dfa.Transition(tid)
			dst := blockState[blockOf[t.Target]]
			switch t.Kind {
			case automaton.Chars:
				out.AddChars(src, dst, t.Range)
			case automaton.BeginString:
				out.AddBeginString(src, dst)
			case automaton.EndString:
				out.AddEndString(src, dst)
			case automaton.Nop:
				out.AddNop(src, dst)
			case automaton.Epsilon:
				out.AddEpsilon(src, dst)
			}
		}
	}
	return out
}

// Brzozowski computes an equivalent minimal automaton by reversing nfa,
// taking its powerset DFA, trimming, reversing again, and taking the
// powerset DFA a second time. It mutates nfa in place during the
// reversal steps, matching automaton.Reverse's documented semantics.
func Brzozowski(nfa *automaton.Automaton, checker powerset.EpsilonChecker) *automaton.Automaton {
	nfa.Reverse()
	tdfa := powerset.Build(nfa, checker)
	tdfa.ReachableTrim()
	tdfa.Reverse()
	mdfa := powerset.Build(tdfa, checker)
	mdfa.ReachableTrim()
	return mdfa
}
