package poorvm

import (
	"errors"
	"testing"

	"github.com/bytekleene/kleene/ast"
	"github.com/bytekleene/kleene/charset"
	"github.com/bytekleene/kleene/hopcroft"
	"github.com/bytekleene/kleene/powerset"
	"github.com/bytekleene/kleene/thompson"
)

func compile(t *testing.T, pattern string) *Program {
	t.Helper()
	n, err := ast.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	charset.Normalize(n)
	charset.Unify(n)
	nfa := thompson.Build(n)
	dfa := powerset.Build(nfa, powerset.Poor)
	mdfa := hopcroft.Minimize(dfa)
	prog, err := Build(mdfa)
	if err != nil {
		t.Fatalf("Build(%q): %v", pattern, err)
	}
	return prog
}

func TestEndToEndTable(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		matched bool
		start   int
		length  int
	}{
		{"[a-zA-Z_$][0-9a-zA-Z_$]*", "abc", true, 0, 3},
		{"[a-zA-Z_$][0-9a-zA-Z_$]*", "a101", true, 0, 4},
		{"[a-zA-Z_$][0-9a-zA-Z_$]*", "10", false, 0, -1},
		{"0[xX]", "0x", true, 0, 2},
		{"0[xX]", "0", false, 0, -1},
		{"[01]+", "0123456789", true, 0, 2},
	}
	for _, tt := range tests {
		p := compile(t, tt.pattern)
		r := p.Search([]byte(tt.input), 0)
		matched := r.AcceptedState != InvalidState
		if matched != tt.matched {
			t.Errorf("pattern %q input %q: matched=%v want %v", tt.pattern, tt.input, matched, tt.matched)
			continue
		}
		if matched {
			if r.Start != tt.start || r.Length != tt.length {
				t.Errorf("pattern %q input %q: start=%d length=%d, want start=%d length=%d",
					tt.pattern, tt.input, r.Start, r.Length, tt.start, tt.length)
			}
		}
	}
}

func TestMatchRequiresFullConsumption(t *testing.T) {
	p := compile(t, "ab")
	if !p.Match([]byte("ab")) {
		t.Error("Match(\"ab\") = false, want true")
	}
	if p.Match([]byte("abc")) {
		t.Error("Match(\"abc\") = true, want false")
	}
}

func TestBuildRejectsAnchors(t *testing.T) {
	n, err := ast.Parse("^a$")
	if err != nil {
		t.Fatal(err)
	}
	charset.Normalize(n)
	charset.Unify(n)
	nfa := thompson.Build(n)
	dfa := powerset.Build(nfa, powerset.Rich)
	_, err = Build(dfa)
	if !errors.Is(err, ErrInvalidForPoorInterpreter) {
		t.Fatalf("Build(anchored dfa) error = %v, want ErrInvalidForPoorInterpreter", err)
	}
}
