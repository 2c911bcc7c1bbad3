// Package kleene implements a POSIX-flavored byte regex engine:
// recursive-descent parser, character-set normalization/unification,
// Thompson construction, powerset (subset) construction, Hopcroft
// minimization, a table-driven interpreter for char-only automata, and
// a backtracking graph-walking interpreter for the rest.
//
// A Regex is safe for concurrent use by multiple goroutines: Compile
// produces an immutable value, and every search method is read-only.
//
// Basic usage:
//
//	re, err := kleene.Compile(`[a-zA-Z_$][0-9a-zA-Z_$]*`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("myVar1") {
//	    fmt.Println("matched")
//	}
package kleene

import (
	"github.com/bytekleene/kleene/ast"
	"github.com/bytekleene/kleene/charset"
	"github.com/bytekleene/kleene/hopcroft"
	"github.com/bytekleene/kleene/literal"
	"github.com/bytekleene/kleene/poorvm"
	"github.com/bytekleene/kleene/powerset"
	"github.com/bytekleene/kleene/prefilter"
	"github.com/bytekleene/kleene/richvm"
	"github.com/bytekleene/kleene/thompson"
)

// Regex is a compiled pattern.
type Regex struct {
	pattern string
	rich    *richvm.Program
	poor    *poorvm.Program // nil unless the minimized DFA is char-only
	pre     prefilter.Prefilter
}

// Compile compiles pattern with the default Config.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics on error. Intended for
// patterns known at compile time (package-level vars).
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// CompileWithConfig compiles pattern with an explicit Config, adjusted
// by any Options given.
func CompileWithConfig(pattern string, cfg Config, opts ...Option) (*Regex, error) {
	for _, o := range opts {
		o(&cfg)
	}

	n, err := ast.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	charset.Normalize(n)
	charset.Unify(n)

	nfa := thompson.Build(n)

	richDFA := hopcroft.Minimize(powerset.Build(nfa, powerset.Rich))
	richProg := richvm.Build(richDFA)

	var poorProg *poorvm.Program
	if !cfg.forceRich {
		poorDFA := hopcroft.Minimize(powerset.Build(nfa, powerset.Poor))
		if p, err := poorvm.Build(poorDFA); err == nil {
			poorProg = p
		}
	}

	var pre prefilter.Prefilter
	if !cfg.disablePrefilter {
		required := literal.Required(n)
		whole := literal.IsWhole(n)
		var alternatives [][]byte
		if alts := literal.LeadingAlternatives(n); len(alts) > 0 {
			alternatives = alts
		}
		if built, _ := prefilter.Build(required, whole, alternatives); built != nil {
			pre = prefilter.WrapWithTracking(built)
		}
	}

	return &Regex{pattern: pattern, rich: richProg, poor: poorProg, pre: pre}, nil
}

// String returns the source pattern Regex was compiled from.
func (re *Regex) String() string { return re.pattern }

// searchHead reports the length of the match anchored exactly at
// offset, or ok == false if none exists, using whichever interpreter
// is available (poor is preferred: it's O(1) per byte). The poor
// interpreter reports the longest accepting prefix; the rich one
// reports the first accepting path in transition-priority order.
func (re *Regex) searchHead(input []byte, offset int) (length int, ok bool) {
	if re.poor != nil {
		r := re.poor.SearchHead(input, offset)
		return r.Length, r.AcceptedState != poorvm.InvalidState
	}
	r := re.rich.SearchHead(input, offset)
	return r.Length, r.AcceptedState != richvm.InvalidState
}

// confirmer is implemented by prefilter.TrackedPrefilter: it lets Search
// report back whether a candidate the prefilter surfaced turned into a
// real match, so an ineffective prefilter can retire itself.
type confirmer interface {
	ConfirmMatch()
}

func (re *Regex) confirmMatch() {
	if c, ok := re.pre.(confirmer); ok {
		c.ConfirmMatch()
	}
}

// prefilterActive reports whether re.pre should still narrow candidate
// offsets. A tracked prefilter that has retired itself is skipped, so
// the search falls back to trying every offset.
func (re *Regex) prefilterActive() bool {
	if re.pre == nil {
		return false
	}
	if t, ok := re.pre.(interface{ IsActive() bool }); ok {
		return t.IsActive()
	}
	return true
}

// Search finds the leftmost match in input at or after from, trying
// successive offsets (optionally narrowed by a prefilter) until one
// succeeds or the input is exhausted.
func (re *Regex) Search(input []byte, from int) (start, length int, ok bool) {
	off := from
	for off <= len(input) {
		if re.prefilterActive() {
			cand := re.pre.Find(input, off)
			if cand < 0 {
				return 0, 0, false
			}
			off = cand
			if re.pre.IsComplete() {
				re.confirmMatch()
				return off, re.pre.LiteralLen(), true
			}
		}
		if l, matched := re.searchHead(input, off); matched {
			re.confirmMatch()
			return off, l, true
		}
		off++
	}
	return 0, 0, false
}

// SearchDetail is like Search but also reports the terminate/accepted
// state ids of the interpreter run that produced the match (or, on
// failure, of the last interpreter run tried, -1 if none ran).
// Intended for diagnostic callers such as cmd/regex; ordinary matching
// should use Search.
func (re *Regex) SearchDetail(input []byte, from int) (start, length int, terminateState, acceptedState int32, ok bool) {
	off := from
	lastTerminate, lastAccepted := invalidStateID, invalidStateID
	for off <= len(input) {
		if re.prefilterActive() {
			cand := re.pre.Find(input, off)
			if cand < 0 {
				break
			}
			off = cand
			if re.pre.IsComplete() {
				ts, as := re.headState(input, off)
				re.confirmMatch()
				return off, re.pre.LiteralLen(), ts, as, true
			}
		}
		ts, as, l, matched := re.searchHeadDetail(input, off)
		lastTerminate, lastAccepted = ts, as
		if matched {
			re.confirmMatch()
			return off, l, ts, as, true
		}
		off++
	}
	return 0, 0, lastTerminate, lastAccepted, false
}

// invalidStateID is the sentinel reported when no interpreter run ever
// executed (e.g. a prefilter ruled out every offset up front).
const invalidStateID int32 = -1

// headState runs the interpreter anchored at offset purely to recover
// its terminate/accepted state ids, for callers (like a complete
// prefilter hit) that otherwise never invoke the interpreter.
func (re *Regex) headState(input []byte, offset int) (terminateState, acceptedState int32) {
	if re.poor != nil {
		r := re.poor.SearchHead(input, offset)
		return r.TerminateState, r.AcceptedState
	}
	r := re.rich.SearchHead(input, offset)
	return r.TerminateState, r.AcceptedState
}

func (re *Regex) searchHeadDetail(input []byte, offset int) (terminateState, acceptedState int32, length int, ok bool) {
	if re.poor != nil {
		r := re.poor.SearchHead(input, offset)
		return r.TerminateState, r.AcceptedState, r.Length, r.AcceptedState != poorvm.InvalidState
	}
	r := re.rich.SearchHead(input, offset)
	return r.TerminateState, r.AcceptedState, r.Length, r.AcceptedState != richvm.InvalidState
}

// Match reports whether input contains a match anywhere.
func (re *Regex) Match(input []byte) bool {
	_, _, ok := re.Search(input, 0)
	return ok
}

// MatchString is the string-argument form of Match.
func (re *Regex) MatchString(s string) bool { return re.Match([]byte(s)) }

// Find returns the leftmost match in input, or nil if none exists.
func (re *Regex) Find(input []byte) []byte {
	start, length, ok := re.Search(input, 0)
	if !ok {
		return nil
	}
	return input[start : start+length]
}

// FindString is the string-argument form of Find.
func (re *Regex) FindString(s string) string {
	b := re.Find([]byte(s))
	if b == nil {
		return ""
	}
	return string(b)
}

// FindIndex returns a two-element slice [start, end) bounding the
// leftmost match, or nil if none exists.
func (re *Regex) FindIndex(input []byte) []int {
	start, length, ok := re.Search(input, 0)
	if !ok {
		return nil
	}
	return []int{start, start + length}
}

// FindStringIndex is the string-argument form of FindIndex.
func (re *Regex) FindStringIndex(s string) []int { return re.FindIndex([]byte(s)) }
