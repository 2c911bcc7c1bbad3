package powerset

import (
	"testing"

	"github.com/bytekleene/kleene/ast"
	"github.com/bytekleene/kleene/automaton"
	"github.com/bytekleene/kleene/charset"
	"github.com/bytekleene/kleene/thompson"
)

func compile(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()
	n, err := ast.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	charset.Normalize(n)
	charset.Unify(n)
	return thompson.Build(n)
}

func acceptsChars(a *automaton.Automaton, s string) bool {
	cur := a.Start
	for i := 0; i < len(s); i++ {
		next := automaton.InvalidState
		for _, tid := range a.State(cur).Outbounds {
			t := a.Transition(tid)
			if t.Kind == automaton.Chars && t.Range.Contains(s[i]) {
				next = t.Target
				break
			}
		}
		if next == automaton.InvalidState {
			return false
		}
		cur = next
	}
	return a.State(cur).Accepted
}

func TestBuildCharsOnlyDisjointLabels(t *testing.T) {
	patterns := []string{"[a-zA-Z_][0-9a-zA-Z_]*", "0[xX]", "[01]+", "a|b|c"}
	for _, p := range patterns {
		nfa := compile(t, p)
		dfa := Build(nfa, Rich)
		for _, s := range dfa.States {
			for i := range s.Outbounds {
				for j := range s.Outbounds {
					if i == j {
						continue
					}
					a := dfa.Transition(s.Outbounds[i])
					b := dfa.Transition(s.Outbounds[j])
					if a.Kind != automaton.Chars || b.Kind != automaton.Chars {
						continue
					}
					overlap := a.Range.Lo <= b.Range.Hi && b.Range.Lo <= a.Range.Hi
					if overlap {
						t.Fatalf("pattern %q: overlapping Chars labels %v and %v on one state", p, a.Range, b.Range)
					}
				}
			}
		}
	}
}

func TestBuildMatchesExpectedLanguage(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"[a-zA-Z_$][0-9a-zA-Z_$]*", "abc", true},
		{"[a-zA-Z_$][0-9a-zA-Z_$]*", "10", false},
		{"0[xX]", "0x", true},
		{"0[xX]", "0", false},
		{"[01]+", "01", true},
		{"[01]+", "2", false},
	}
	for _, tt := range tests {
		nfa := compile(t, tt.pattern)
		dfa := Build(nfa, Poor)
		if got := acceptsChars(dfa, tt.input); got != tt.want {
			t.Errorf("pattern %q input %q: got %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}
