package ast

import (
	"errors"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    *Node
	}{
		{
			name:    "literal char",
			pattern: "a",
			want:    CharRange('a', 'a'),
		},
		{
			name:    "concatenation",
			pattern: "ab",
			want:    Concat(CharRange('a', 'a'), CharRange('b', 'b')),
		},
		{
			name:    "alternation",
			pattern: "a|b",
			want:    Select(CharRange('a', 'a'), CharRange('b', 'b')),
		},
		{
			name:    "any char",
			pattern: ".",
			want:    CharRange(0x01, 0xFF),
		},
		{
			name:    "begin end",
			pattern: "^a$",
			want:    Concat(Begin(), Concat(CharRange('a', 'a'), End())),
		},
		{
			name:    "star greedy",
			pattern: "a*",
			want:    Repeat(CharRange('a', 'a'), 0, -1, true),
		},
		{
			name:    "star lazy",
			pattern: "a*?",
			want:    Repeat(CharRange('a', 'a'), 0, -1, false),
		},
		{
			name:    "plus",
			pattern: "a+",
			want:    Repeat(CharRange('a', 'a'), 1, -1, true),
		},
		{
			name:    "optional",
			pattern: "a?",
			want:    Repeat(CharRange('a', 'a'), 0, 1, true),
		},
		{
			name:    "group",
			pattern: "(a)",
			want:    CharRange('a', 'a'),
		},
		{
			name:    "group with alternation",
			pattern: "(a|b)c",
			want:    Concat(Select(CharRange('a', 'a'), CharRange('b', 'b')), CharRange('c', 'c')),
		},
		{
			name:    "set",
			pattern: "[ab]",
			want:    SetNode(Select(CharRange('a', 'a'), CharRange('b', 'b')), false),
		},
		{
			name:    "set range",
			pattern: "[a-z]",
			want:    SetNode(CharRange('a', 'z'), false),
		},
		{
			name:    "set complement",
			pattern: "[^a-z]",
			want:    SetNode(CharRange('a', 'z'), true),
		},
		{
			name:    "escaped metachar",
			pattern: `\.`,
			want:    CharRange('.', '.'),
		},
		{
			name:    "escaped control",
			pattern: `\n`,
			want:    CharRange('\n', '\n'),
		},
		{
			name:    "nested set adjacency",
			pattern: "[a-bb-c]",
			want: SetNode(
				Select(CharRange('a', 'b'), CharRange('b', 'c')),
				false,
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			if !Equal(got, tt.want) {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParseEmptyPattern(t *testing.T) {
	got, err := Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") error: %v", err)
	}
	if got != nil {
		t.Fatalf("Parse(\"\") = %+v, want nil", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr error
	}{
		{"illegal escape", `\q`, ErrIllegalEscape},
		{"trailing backslash", `a\`, ErrIllegalEscape},
		{"range out of order", `[z-a]`, ErrRangeOutOfOrder},
		{"unclosed group", `(ab`, ErrUnclosedGroup},
		{"unclosed set", `[ab`, ErrUnclosedSet},
		{"dash at eof", `[a-`, ErrRangeOutOfOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.pattern)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse(%q) error = %v, want wrapping %v", tt.pattern, err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error is not a *ParseError: %v", tt.pattern, err)
			}
		})
	}
}

func TestEqualNilHandling(t *testing.T) {
	if !Equal(nil, nil) {
		t.Fatal("Equal(nil, nil) = false, want true")
	}
	if Equal(nil, CharRange('a', 'a')) {
		t.Fatal("Equal(nil, node) = true, want false")
	}
	if Equal(CharRange('a', 'a'), nil) {
		t.Fatal("Equal(node, nil) = true, want false")
	}
}
