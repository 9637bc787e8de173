package ast

import (
	"testing"

	"github.com/Toplogic-Inc/log-surgeon-go/lserr"
)

func TestParseLiteralConcat(t *testing.T) {
	node, err := Parse("ab")
	if err != nil {
		t.Fatalf("Parse(ab) error: %v", err)
	}
	concat, ok := node.(Concat)
	if !ok || len(concat.Subs) != 2 {
		t.Fatalf("Parse(ab) = %#v, want Concat of 2 literals", node)
	}
}

func TestParseAlternation(t *testing.T) {
	node, err := Parse("a|b|c")
	if err != nil {
		t.Fatalf("Parse(a|b|c) error: %v", err)
	}
	alt, ok := node.(Alternate)
	if !ok || len(alt.Subs) != 3 {
		t.Fatalf("Parse(a|b|c) = %#v, want Alternate of 3", node)
	}
}

func TestParseClasses(t *testing.T) {
	cases := []string{`\d`, `\s`, `\w`, `.`}
	for _, p := range cases {
		if _, err := Parse(p); err != nil {
			t.Errorf("Parse(%q) error: %v", p, err)
		}
	}
}

func TestParseBracketedClass(t *testing.T) {
	node, err := Parse("[a-z0-9_]")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	class, ok := node.(Class)
	if !ok {
		t.Fatalf("Parse([a-z0-9_]) = %#v, want Class", node)
	}
	if !class.Mask.Test('m') || !class.Mask.Test('5') || !class.Mask.Test('_') {
		t.Errorf("class mask missing expected members")
	}
	if class.Mask.Test('A') {
		t.Errorf("class mask should not match 'A'")
	}
}

func TestParseRepeats(t *testing.T) {
	cases := []struct {
		pattern  string
		min, max int
	}{
		{"a*", 0, -1},
		{"a+", 1, -1},
		{"a?", 0, 1},
		{"a{3}", 3, 3},
		{"a{2,5}", 2, 5},
		{"a{2,}", 2, -1},
	}
	for _, c := range cases {
		node, err := Parse(c.pattern)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", c.pattern, err)
		}
		rep, ok := node.(Repeat)
		if !ok {
			t.Fatalf("Parse(%q) = %#v, want Repeat", c.pattern, node)
		}
		if rep.Min != c.min || rep.Max != c.max {
			t.Errorf("Parse(%q) = {%d,%d}, want {%d,%d}", c.pattern, rep.Min, rep.Max, c.min, c.max)
		}
	}
}

func TestParseGroupAndPrecedence(t *testing.T) {
	node, err := Parse("(ab)+")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	rep, ok := node.(Repeat)
	if !ok {
		t.Fatalf("Parse((ab)+) = %#v, want Repeat", node)
	}
	if _, ok := rep.Sub.(Concat); !ok {
		t.Fatalf("Repeat.Sub = %#v, want Concat", rep.Sub)
	}
}

func TestParseTimestampExample(t *testing.T) {
	_, err := Parse(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{2}`)
	if err != nil {
		t.Fatalf("Parse(timestamp pattern) error: %v", err)
	}
}

func TestParseHexExample(t *testing.T) {
	_, err := Parse(`(0x){0,1}([\da-f]+|[\dA-F]+)`)
	if err != nil {
		t.Fatalf("Parse(hex pattern) error: %v", err)
	}
}

func wantKind(t *testing.T, err error, kind lserr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %s, got nil", kind)
	}
	if !lserr.Is(err, kind) {
		t.Fatalf("expected error of kind %s, got %v", kind, err)
	}
}

func TestRejectNegatedClass(t *testing.T) {
	_, err := Parse("[^a]")
	wantKind(t, err, lserr.NegatedClass)
}

func TestRejectNegatedPerlClass(t *testing.T) {
	for _, p := range []string{`\D`, `\S`, `\W`} {
		_, err := Parse(p)
		wantKind(t, err, lserr.NegatedClass)
	}
}

func TestRejectNonGreedy(t *testing.T) {
	for _, p := range []string{"a*?", "a+?", "a??", "a{2,5}?"} {
		_, err := Parse(p)
		wantKind(t, err, lserr.NonGreedyRepetition)
	}
}

func TestRejectAnchors(t *testing.T) {
	for _, p := range []string{"^a", "a$"} {
		_, err := Parse(p)
		wantKind(t, err, lserr.UnsupportedASTNode)
	}
}

func TestRejectNonASCIILiteral(t *testing.T) {
	_, err := Parse("café")
	wantKind(t, err, lserr.NonASCIICharacter)
}

func TestRejectNamedGroup(t *testing.T) {
	_, err := Parse("(?P<name>a)")
	wantKind(t, err, lserr.UnsupportedASTNode)
}

func TestRejectUnterminatedClass(t *testing.T) {
	_, err := Parse("[abc")
	wantKind(t, err, lserr.RegexParse)
}

func TestRejectUnbalancedParen(t *testing.T) {
	_, err := Parse("(abc")
	wantKind(t, err, lserr.RegexParse)
}

func TestRejectEmptyAlternative(t *testing.T) {
	_, err := Parse("a||b")
	wantKind(t, err, lserr.RegexParse)
}
