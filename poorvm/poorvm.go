// Package poorvm implements the table-driven "poor" interpreter
// (spec.md §4.8): an O(1)-per-byte matcher over a char-only automaton
// (no anchors, no Nop — those are rejected at build time).
//
// Grounded on original_source's PoorInterpreter (src/regex_interpreter.cpp).
package poorvm

import (
	"errors"

	"github.com/bytekleene/kleene/automaton"
	"github.com/bytekleene/kleene/charset"
)

// InvalidState marks an absent transition-table cell or a failed
// search.
const InvalidState int32 = -1

// ErrInvalidForPoorInterpreter is returned by Build when the DFA
// contains a transition the poor interpreter cannot represent (any
// kind other than Chars — anchors and Nop require the rich
// interpreter).
var ErrInvalidForPoorInterpreter = errors.New("poorvm: automaton contains a non-Chars transition")

// Program is a compiled table-driven matcher.
type Program struct {
	charMap         [256]int16
	transitionTable [][]int32 // [state][category] -> state, or InvalidState
	accepted        []bool
	start           int32
	charCategories  int32
}

// Result mirrors spec.md §6's match result shape.
type Result struct {
	Start          int
	Length         int // -1 when no accept was reached
	TerminateState int32
	AcceptedState  int32 // InvalidState on failure
}

// Build constructs a Program from a DFA whose every transition is
// Chars. Build-time algorithm (spec.md §4.8): marshal every
// transition's range into one disjoint category alphabet, number
// states 0..n-1, and fill transitionTable[s][c] for every category c
// whose range lies fully inside a transition's range out of s.
func Build(dfa *automaton.Automaton) (*Program, error) {
	var ranges []charset.Range
	for _, t := range dfa.Transitions {
		if t.Kind != automaton.Chars {
			return nil, ErrInvalidForPoorInterpreter
		}
		ranges = append(ranges, t.Range)
	}
	atoms := charset.Partition(ranges)
	charCategories := int32(len(atoms)) + 1
	sink := int16(charCategories - 1)

	var charMap [256]int16
	for i := range charMap {
		charMap[i] = sink
	}
	for i, r := range atoms {
		for b := int(r.Lo); b <= int(r.Hi); b++ {
			charMap[b] = int16(i)
		}
	}

	stateCount := len(dfa.States)
	accepted := make([]bool, stateCount)
	table := make([][]int32, stateCount)
	for i := range table {
		accepted[i] = dfa.States[i].Accepted
		table[i] = make([]int32, charCategories)
		for j := range table[i] {
			table[i][j] = InvalidState
		}
	}

	for i := range dfa.States {
		for _, tid := range dfa.States[i].Outbounds {
			t := dfa.Transition(tid)
			for c, r := range atoms {
				if t.Range.Lo <= r.Lo && r.Hi <= t.Range.Hi {
					table[i][c] = int32(t.Target)
				}
			}
		}
	}

	return &Program{
		charMap:         charMap,
		transitionTable: table,
		accepted:        accepted,
		start:           int32(dfa.Start),
		charCategories:  charCategories,
	}, nil
}

// SearchHead runs the matcher anchored at offset: it walks forward
// from offset recording the longest accepting prefix found, and stops
// at the first byte with no outgoing transition or at end of input.
func (p *Program) SearchHead(input []byte, offset int) Result {
	cur := p.start
	bestAccept := InvalidState
	bestLen := -1
	pos := offset
	for cur != InvalidState {
		if p.accepted[cur] {
			bestAccept = cur
			bestLen = pos - offset
		}
		if pos >= len(input) {
			break
		}
		b := input[pos]
		cat := p.charMap[b]
		next := p.transitionTable[cur][cat]
		if next == InvalidState {
			break
		}
		cur = next
		pos++
	}
	return Result{Start: offset, Length: bestLen, TerminateState: cur, AcceptedState: bestAccept}
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
