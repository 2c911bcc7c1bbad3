package thompson

import (
	"testing"

	"github.com/bytekleene/kleene/ast"
	"github.com/bytekleene/kleene/automaton"
	"github.com/bytekleene/kleene/charset"
)

func closeEpsilon(a *automaton.Automaton, states map[automaton.StateID]bool, offset, length int) map[automaton.StateID]bool {
	changed := true
	for changed {
		changed = false
		for s := range states {
			for _, tid := range a.State(s).Outbounds {
				t := a.Transition(tid)
				var ok bool
				switch t.Kind {
				case automaton.Epsilon, automaton.Nop:
					ok = true
				case automaton.BeginString:
					ok = offset == 0
				case automaton.EndString:
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

func acceptsFull(a *automaton.Automaton, s string) bool {
	cur := closeEpsilon(a, map[automaton.StateID]bool{a.Start: true}, 0, len(s))
	for i := 0; i < len(s); i++ {
		next := map[automaton.StateID]bool{}
		for st := range cur {
			for _, tid := range a.State(st).Outbounds {
				t := a.Transition(tid)
				if t.Kind == automaton.Chars && t.Range.Contains(s[i]) {
					next[t.Target] = true
				}
			}
		}
		cur = closeEpsilon(a, next, i+1, len(s))
	}
	for st := range cur {
		if a.State(st).Accepted {
			return true
		}
	}
	return false
}

func compile(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()
	n, err := ast.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	charset.Normalize(n)
	charset.Unify(n)
	return Build(n)
}

func TestBuildLiterals(t *testing.T) {
	a := compile(t, "ab")
	for _, tt := range []struct {
		s    string
		want bool
	}{
		{"ab", true},
		{"a", false},
		{"abc", false},
		{"ba", false},
	} {
		if got := acceptsFull(a, tt.s); got != tt.want {
			t.Errorf("accepts(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestBuildAlternation(t *testing.T) {
	a := compile(t, "cat|dog")
	for _, tt := range []struct {
		s    string
		want bool
	}{
		{"cat", true},
		{"dog", true},
		{"cog", false},
		{"", false},
	} {
		if got := acceptsFull(a, tt.s); got != tt.want {
			t.Errorf("accepts(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestBuildStar(t *testing.T) {
	a := compile(t, "a*")
	for _, tt := range []struct {
		s    string
		want bool
	}{
		{"", true},
		{"a", true},
		{"aaaa", true},
		{"b", false},
		{"aab", false},
	} {
		if got := acceptsFull(a, tt.s); got != tt.want {
			t.Errorf("accepts(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestBuildBoundedRepeat(t *testing.T) {
	n := ast.Repeat(ast.CharRange('a', 'a'), 1, 3, true)
	aut := Build(n)
	for _, tt := range []struct {
		s    string
		want bool
	}{
		{"a", true},
		{"aa", true},
		{"aaa", true},
		{"", false},
		{"aaaa", false},
	} {
		if got := acceptsFull(aut, tt.s); got != tt.want {
			t.Errorf("accepts(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestBuildAnchors(t *testing.T) {
	a := compile(t, "^a$")
	if !acceptsFull(a, "a") {
		t.Errorf("accepts(%q) = false, want true", "a")
	}
	if acceptsFull(a, "ab") {
		t.Errorf("accepts(%q) = true, want false", "ab")
	}
}

func TestBuildEmptyPattern(t *testing.T) {
	n, err := ast.Parse("")
	if err != nil {
		t.Fatal(err)
	}
	a := Build(n)
	if !acceptsFull(a, "") {
		t.Errorf("empty pattern should accept the empty string")
	}
	if acceptsFull(a, "x") {
		t.Errorf("empty pattern should not accept non-empty input")
	}
}

func TestBuildSet(t *testing.T) {
	a := compile(t, "[a-c]+")
	for _, tt := range []struct {
		s    string
		want bool
	}{
		{"a", true},
		{"abc", true},
		{"abcd", false},
		{"", false},
	} {
		if got := acceptsFull(a, tt.s); got != tt.want {
			t.Errorf("accepts(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
