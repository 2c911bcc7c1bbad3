// Package prefilter provides fast candidate filtering for regex search
// using the unconditional literal structure literal.Required and
// literal.LeadingAlternatives can pull out of a pattern.
//
// A prefilter is used to quickly reject positions in the haystack that
// cannot possibly match the full pattern, ahead of running the poorvm
// or richvm interpreter. The package selects between three strategies:
//   - Single byte literal -> memchrPrefilter (skipscan.IndexByte)
//   - Single multi-byte literal -> memmemPrefilter (skipscan.Index)
//   - 3+ leading literal alternatives -> ahoPrefilter (Aho-Corasick)
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/bytekleene/kleene/internal/skipscan"
)

// Prefilter is used to quickly find candidate match positions before
// running the full interpreter.
type Prefilter interface {
	// Find returns the index of the first candidate match starting at
	// or after start, or -1 if none exists.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a prefilter match guarantees a full
	// pattern match, letting the caller skip interpreter verification.
	IsComplete() bool

	// LiteralLen returns the matched literal's length when IsComplete
	// is true; 0 otherwise.
	LiteralLen() int

	// HeapBytes reports heap memory used by this prefilter.
	HeapBytes() int
}

// ahoThreshold is the minimum number of leading literal alternatives
// before an Aho-Corasick automaton is worth building over per-literal
// skip scans.
const ahoThreshold = 3

// Build picks a Prefilter from a pattern's extracted literal
// structure. required is literal.Required's output (the pattern's
// unconditional leading run, possibly the whole pattern if it's a bare
// literal); alternatives is literal.LeadingAlternatives's output, or
// nil. Returns (nil, nil) when neither yields anything to filter on.
func Build(required []byte, wholePattern bool, alternatives [][]byte) (Prefilter, error) {
	if len(alternatives) >= ahoThreshold {
		return NewAhoCorasick(alternatives)
	}
	if len(required) > 0 {
		return NewLiteral(required, wholePattern), nil
	}
	return nil, nil
}

// NewLiteral builds a Prefilter over a single literal run. complete
// indicates the run is the entire pattern (so a prefilter hit is
// itself a full match, no interpreter verification needed). Returns
// nil if run is empty.
func NewLiteral(run []byte, complete bool) Prefilter {
	switch len(run) {
	case 0:
		return nil
	case 1:
		return &memchrPrefilter{needle: run[0], complete: complete}
	default:
		return &memmemPrefilter{needle: append([]byte(nil), run...), complete: complete}
	}
}

// NewAhoCorasick builds a Prefilter over a set of leading literal
// alternatives, none of which are assumed complete (an Aho-Corasick
// hit only narrows the candidate start; the interpreter still decides
// which, if any, alternative the rest of the pattern accepts).
func NewAhoCorasick(alternatives [][]byte) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	for _, alt := range alternatives {
		builder.AddPattern(alt)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoPrefilter{auto: auto}, nil
}

// memchrPrefilter skip-scans for a single needle byte.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := skipscan.IndexByte(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (p *memchrPrefilter) IsComplete() bool { return p.complete }
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}
func (p *memchrPrefilter) HeapBytes() int { return 0 }

// memmemPrefilter skip-scans for a multi-byte literal needle.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := skipscan.Index(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) IsComplete() bool { return p.complete }
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}
func (p *memmemPrefilter) HeapBytes() int { return len(p.needle) }

// ahoPrefilter narrows to positions where one of a set of leading
// literal alternatives occurs. Never complete: which alternative (if
// any) the interpreter actually accepts from that point still depends
// on the rest of the pattern.
type ahoPrefilter struct {
	auto *ahocorasick.Automaton
}

func (p *ahoPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoPrefilter) IsComplete() bool { return false }
func (p *ahoPrefilter) LiteralLen() int  { return 0 }
func (p *ahoPrefilter) HeapBytes() int   { return 0 }
