package ast

import "strings"

// Parse compiles a textual pattern into an AST per the grammar in
// spec.md §4.1:
//
//	RE           = SimpleRE ("|" RE)?
//	SimpleRE     = BasicRE SimpleRE?
//	BasicRE      = ElementaryRE ( "*" | "+" | "?" ) "?"?
//	ElementaryRE = "^" | "$" | "." | "(" RE ")" | "[" "^"? SetItems "]" | Char
//	SetItems     = SetItem SetItems?
//	SetItem      = Char ("-" Char)?
//	Char         = <non-metachar byte> | "\" <escaped byte>
//
// An empty pattern returns (nil, nil); callers that need an automaton
// for the empty pattern treat nil as "matches the empty string" (see
// thompson.Build).
func Parse(pattern string) (*Node, error) {
	if pattern == "" {
		return nil, nil
	}
	p := &parser{pattern: pattern}
	return p.parseRE()
}

type parser struct {
	pattern string
	pos     int
}

func (p *parser) eof() bool { return p.pos >= len(p.pattern) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.pattern[p.pos]
}

// isChar consumes and reports whether the next byte equals c.
func (p *parser) isChar(c byte) bool {
	if !p.eof() && p.pattern[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// isOneOf consumes and reports whether the next byte is one of chars.
func (p *parser) isOneOf(chars string) bool {
	if p.eof() {
		return false
	}
	if strings.IndexByte(chars, p.pattern[p.pos]) < 0 {
		return false
	}
	p.pos++
	return true
}

// escapedByte maps a legal escaped byte to the byte it produces.
func escapedByte(e byte) (byte, bool) {
	switch e {
	case 'r':
		return '\r', true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case '-', '[', ']', '\\', '/', '^', '$', '.', '+', '*', '?', '|':
		return e, true
	default:
		return 0, false
	}
}

func (p *parser) parseChar() (byte, error) {
	pos := p.pos
	if p.eof() {
		// Mirrors the original's reliance on the pattern's NUL
		// terminator: reading past the end yields byte 0 rather
		// than failing outright, so e.g. "[a-" surfaces as
		// RangeOutOfOrder ('a' > 0), not a parser crash.
		return 0, nil
	}
	c := p.pattern[p.pos]
	if c != '\\' {
		p.pos++
		return c, nil
	}
	if p.pos+1 >= len(p.pattern) {
		p.pos++
		return 0, &ParseError{Err: ErrIllegalEscape, Pos: pos}
	}
	e := p.pattern[p.pos+1]
	b, ok := escapedByte(e)
	if !ok {
		p.pos += 2
		return 0, &ParseError{Err: ErrIllegalEscape, Pos: pos}
	}
	p.pos += 2
	return b, nil
}

func (p *parser) parseSetItem() (*Node, error) {
	pos := p.pos
	begin, err := p.parseChar()
	if err != nil {
		return nil, err
	}
	end := begin
	if p.isChar('-') {
		end, err = p.parseChar()
		if err != nil {
			return nil, err
		}
	}
	if begin > end {
		return nil, &ParseError{Err: ErrRangeOutOfOrder, Pos: pos}
	}
	return CharRange(begin, end), nil
}

func (p *parser) parseSetItems() (*Node, error) {
	if p.eof() || p.peek() == ']' {
		return nil, nil
	}
	item, err := p.parseSetItem()
	if err != nil {
		return nil, err
	}
	rest, err := p.parseSetItems()
	if err != nil {
		return nil, err
	}
	if rest != nil {
		return Select(item, rest), nil
	}
	return item, nil
}

// metaChars are the bytes that terminate an elementary expression
// without being consumed by it — the caller (parseBasicRE, parseRE)
// decides what to do with them.
const metaChars = "()+*?|"

func (p *parser) parseElementaryRE() (*Node, error) {
	if p.eof() {
		return nil, nil
	}
	switch {
	case p.isChar('^'):
		return Begin(), nil
	case p.isChar('$'):
		return End(), nil
	case p.isChar('.'):
		return CharRange(0x01, 0xFF), nil
	case p.isChar('['):
		complement := p.isChar('^')
		items, err := p.parseSetItems()
		if err != nil {
			return nil, err
		}
		if !p.isChar(']') {
			return nil, &ParseError{Err: ErrUnclosedSet, Pos: p.pos}
		}
		return SetNode(items, complement), nil
	case p.isChar('('):
		expr, err := p.parseRE()
		if err != nil {
			return nil, err
		}
		if !p.isChar(')') {
			return nil, &ParseError{Err: ErrUnclosedGroup, Pos: p.pos}
		}
		return expr, nil
	case p.isOneOf(metaChars):
		// A metacharacter here belongs to the caller (repetition
		// operator, alternation bar, or group close) — back off
		// without consuming it.
		p.pos--
		return nil, nil
	default:
		c, err := p.parseChar()
		if err != nil {
			return nil, err
		}
		return CharRange(c, c), nil
	}
}

func (p *parser) parseBasicRE() (*Node, error) {
	elem, err := p.parseElementaryRE()
	if err != nil {
		return nil, err
	}
	switch {
	case p.isChar('*'):
		return Repeat(elem, 0, -1, !p.isChar('?')), nil
	case p.isChar('+'):
		return Repeat(elem, 1, -1, !p.isChar('?')), nil
	case p.isChar('?'):
		return Repeat(elem, 0, 1, !p.isChar('?')), nil
	default:
		return elem, nil
	}
}

func (p *parser) parseSimpleRE() (*Node, error) {
	if p.eof() {
		return nil, nil
	}
	basic, err := p.parseBasicRE()
	if err != nil {
		return nil, err
	}
	if basic == nil {
		return nil, nil
	}
	right, err := p.parseSimpleRE()
	if err != nil {
		return nil, err
	}
	if right != nil {
		return Concat(basic, right), nil
	}
	return basic, nil
}

func (p *parser) parseRE() (*Node, error) {
	if p.eof() {
		return nil, nil
	}
	simple, err := p.parseSimpleRE()
	if err != nil {
		return nil, err
	}
	if p.isChar('|') {
		right, err := p.parseRE()
		if err != nil {
			return nil, err
		}
		if right != nil {
			return Select(simple, right), nil
		}
	}
	return simple, nil
}
