package automaton

import (
	"testing"

	"github.com/bytekleene/kleene/charset"
)

// linear builds a tiny automaton accepting exactly "ab" via Chars
// transitions s0 --a--> s1 --b--> s2(accept), plus an unreachable
// dangling state to exercise ReachableTrim.
func linear() *Automaton {
	a := New()
	s0 := a.AddState()
	s1 := a.AddState()
	s2 := a.AddState()
	dangling := a.AddState()
	_ = dangling
	a.AddChars(s0, s1, charset.Range{Lo: 'a', Hi: 'a'})
	a.AddChars(s1, s2, charset.Range{Lo: 'b', Hi: 'b'})
	a.Start = s0
	a.States[s2].Accepted = true
	return a
}

// closeEpsilon expands a set of active states along every
// zero-width-eligible transition at the given offset into a length-
// long input: Epsilon and Nop unconditionally, BeginString only at
// offset 0, EndString only at the end of input.
func closeEpsilon(a *Automaton, states map[StateID]bool, offset, length int) map[StateID]bool {
	changed := true
	for changed {
		changed = false
		for s := range states {
			for _, tid := range a.States[s].Outbounds {
				t := a.Transitions[tid]
				var ok bool
				switch t.Kind {
				case Epsilon, Nop:
					ok = true
				case BeginString:
					ok = offset == 0
				case EndString:
					ok = offset == length
				}
				if ok && !states[t.Target] {
					states[t.Target] = true
					changed = true
				}
			}
		}
	}
	return states
}

// accepts runs a small NFA simulation (handling Chars, Epsilon, Nop,
// and the two anchors) for test purposes only; the real engines live
// in powerset/poorvm/richvm.
func accepts(a *Automaton, s string) bool {
	cur := closeEpsilon(a, map[StateID]bool{a.Start: true}, 0, len(s))
	for i := 0; i < len(s); i++ {
		next := map[StateID]bool{}
		for st := range cur {
			for _, tid := range a.States[st].Outbounds {
				t := a.Transitions[tid]
				if t.Kind == Chars && t.Range.Contains(s[i]) {
					next[t.Target] = true
				}
			}
		}
		cur = closeEpsilon(a, next, i+1, len(s))
	}
	for st := range cur {
		if a.States[st].Accepted {
			return true
		}
	}
	return false
}

func TestReachableTrimRemovesDangling(t *testing.T) {
	a := linear()
	if len(a.States) != 4 {
		t.Fatalf("setup: want 4 states, got %d", len(a.States))
	}
	a.ReachableTrim()
	if len(a.States) != 3 {
		t.Fatalf("after trim: want 3 states, got %d", len(a.States))
	}
	for id := range a.States {
		reached := false
		queue := []StateID{a.Start}
		seen := map[StateID]bool{a.Start: true}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if int(cur) == id {
				reached = true
			}
			for _, tid := range a.States[cur].Outbounds {
				tgt := a.Transitions[tid].Target
				if !seen[tgt] {
					seen[tgt] = true
					queue = append(queue, tgt)
				}
			}
		}
		if !reached {
			t.Fatalf("state %d not reachable after trim", id)
		}
	}
	if !accepts(a, "ab") || accepts(a, "a") || accepts(a, "ac") {
		t.Fatalf("trim changed the accepted language")
	}
}

func TestReverseInvolutionUnderLanguage(t *testing.T) {
	a := linear()
	a.Reverse()
	a.Reverse()
	a.ReachableTrim()

	for _, s := range []string{"ab", "a", "", "ba", "abc"} {
		if accepts(a, s) != (s == "ab") {
			t.Fatalf("reverse(reverse(a)) accepts %q = %v, want %v", s, accepts(a, s), s == "ab")
		}
	}
}
