// Package automaton is the shared graph data model used by every
// stage downstream of the parser: Thompson construction builds one,
// powerset construction consumes one and builds another, Hopcroft
// minimization rewrites one, and both interpreters read one.
//
// States and transitions live in flat, arena-style slices addressed by
// integer ID rather than pointers — the natural Go answer to the
// cyclic graphs repetition loops produce, mirroring the teacher's
// nfa.StateID index convention.
package automaton

import (
	"github.com/bytekleene/kleene/charset"
	"github.com/bytekleene/kleene/internal/conv"
)

// StateID indexes Automaton.States.
type StateID uint32

// InvalidState is the sentinel "no state" value.
const InvalidState StateID = 1<<32 - 1

// TransitionID indexes Automaton.Transitions.
type TransitionID uint32

// TransitionKind discriminates what a Transition consumes.
type TransitionKind uint8

const (
	// Chars consumes one byte if it falls within Transition.Range.
	Chars TransitionKind = iota
	// Epsilon consumes nothing; always eligible, collapsed by every
	// epsilon checker.
	Epsilon
	// BeginString consumes nothing; eligible only at offset 0.
	BeginString
	// EndString consumes nothing; eligible only at the end of input.
	EndString
	// Nop consumes nothing; eligible unconditionally, but — unlike
	// Epsilon — survives the rich epsilon-checker and the poor
	// epsilon-checker alike is free to treat it as epsilon. It exists
	// to encode repetition-loop exit/continue priority.
	Nop
)

func (k TransitionKind) String() string {
	switch k {
	case Chars:
		return "Chars"
	case Epsilon:
		return "Epsilon"
	case BeginString:
		return "BeginString"
	case EndString:
		return "EndString"
	case Nop:
		return "Nop"
	default:
		return "Unknown"
	}
}

// State is a single automaton state. Inbounds/Outbounds record
// transition IDs in insertion order — that order IS priority for the
// rich interpreter and every automaton transform must preserve it.
type State struct {
	Inbounds  []TransitionID
	Outbounds []TransitionID
	Accepted  bool
}

// Transition is a single labeled edge. Range is meaningful only when
// Kind == Chars.
type Transition struct {
	Source, Target StateID
	Kind           TransitionKind
	Range          charset.Range
}

// Automaton owns every state and transition reachable from Start (once
// ReachableTrim has run; before that, unreachable states may remain).
type Automaton struct {
	States      []State
	Transitions []Transition
	Start       StateID
}

// New returns an empty automaton with no start state set.
func New() *Automaton {
	return &Automaton{Start: InvalidState}
}

// AddState appends a fresh, non-accepting state with no edges and
// returns its ID.
func (a *Automaton) AddState() StateID {
	id := StateID(conv.IntToUint32(len(a.States)))
	a.States = append(a.States, State{})
	return id
}

func (a *Automaton) addTransition(from, to StateID, kind TransitionKind, r charset.Range) TransitionID {
	id := TransitionID(conv.IntToUint32(len(a.Transitions)))
	a.Transitions = append(a.Transitions, Transition{Source: from, Target: to, Kind: kind, Range: r})
	a.States[from].Outbounds = append(a.States[from].Outbounds, id)
	a.States[to].Inbounds = append(a.States[to].Inbounds, id)
	return id
}

// AddChars adds a byte-range transition.
func (a *Automaton) AddChars(from, to StateID, r charset.Range) TransitionID {
	return a.addTransition(from, to, Chars, r)
}

// AddEpsilon adds an unconditional epsilon transition.
func (a *Automaton) AddEpsilon(from, to StateID) TransitionID {
	return a.addTransition(from, to, Epsilon, charset.Range{})
}

// AddBeginString adds a start-of-string anchor transition.
func (a *Automaton) AddBeginString(from, to StateID) TransitionID {
	return a.addTransition(from, to, BeginString, charset.Range{})
}

// AddEndString adds an end-of-string anchor transition.
func (a *Automaton) AddEndString(from, to StateID) TransitionID {
	return a.addTransition(from, to, EndString, charset.Range{})
}

// AddNop adds a no-op transition (used to encode loop-exit priority).
func (a *Automaton) AddNop(from, to StateID) TransitionID {
	return a.addTransition(from, to, Nop, charset.Range{})
}

// State returns a pointer to the state with the given ID for in-place
// mutation (e.g. flipping Accepted).
func (a *Automaton) State(id StateID) *State { return &a.States[id] }

// Transition returns a pointer to the transition with the given ID.
func (a *Automaton) Transition(id TransitionID) *Transition { return &a.Transitions[id] }
