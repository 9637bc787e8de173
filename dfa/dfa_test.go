package dfa

import (
	"testing"

	"github.com/Toplogic-Inc/log-surgeon-go/ast"
	"github.com/Toplogic-Inc/log-surgeon-go/nfa"
)

func mustCompile(t *testing.T, pattern string) *nfa.NFA {
	t.Helper()
	node, err := ast.Parse(pattern)
	if err != nil {
		t.Fatalf("ast.Parse(%q) error: %v", pattern, err)
	}
	n, err := nfa.Compile(node)
	if err != nil {
		t.Fatalf("nfa.Compile(%q) error: %v", pattern, err)
	}
	return n
}

func run(d *DFA, input string) (matched bool, origin int32) {
	s := d.Start
	for i := 0; i < len(input); i++ {
		s = d.Step(s, input[i])
		if s == NoTransition {
			return false, NoOrigin
		}
	}
	return d.IsAccepting(s), d.AcceptOrigin[s]
}

func TestBuildEmptyNFAVector(t *testing.T) {
	d, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) error: %v", err)
	}
	if d.NumStates() != 1 {
		t.Fatalf("NumStates() = %d, want 1", d.NumStates())
	}
	if d.IsAccepting(d.Start) {
		t.Fatalf("sink start state should not accept")
	}
	if d.Step(d.Start, 'a') != NoTransition {
		t.Fatalf("sink state should have no transitions")
	}
}

func TestBuildSingleNFAAccepts(t *testing.T) {
	n := mustCompile(t, "abc")
	d, err := Build([]*nfa.NFA{n})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if ok, origin := run(d, "abc"); !ok || origin != 0 {
		t.Fatalf("run(abc) = (%v, %d), want (true, 0)", ok, origin)
	}
	if ok, _ := run(d, "ab"); ok {
		t.Fatalf("partial input should not accept")
	}
}

func TestBuildLowestIndexTiebreak(t *testing.T) {
	a := mustCompile(t, `\w+`)
	b := mustCompile(t, `[a-z]+`)
	d, err := Build([]*nfa.NFA{a, b})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	ok, origin := run(d, "abc")
	if !ok {
		t.Fatalf("expected abc to match either pattern")
	}
	if origin != 0 {
		t.Fatalf("origin = %d, want 0 (lowest-index NFA wins the tie)", origin)
	}
}

func TestBuildSchemaOrderMatters(t *testing.T) {
	digits := mustCompile(t, `\d+`)
	word := mustCompile(t, `\w+`)
	d, err := Build([]*nfa.NFA{digits, word})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if ok, origin := run(d, "123"); !ok || origin != 0 {
		t.Fatalf("run(123) = (%v, %d), want (true, 0)", ok, origin)
	}
	if ok, origin := run(d, "abc"); !ok || origin != 1 {
		t.Fatalf("run(abc) = (%v, %d), want (true, 1)", ok, origin)
	}
}

func TestBuildDeterministicSingleStep(t *testing.T) {
	n := mustCompile(t, "a|aa")
	d, err := Build([]*nfa.NFA{n})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if ok, _ := run(d, "a"); !ok {
		t.Fatalf("expected 'a' to match")
	}
	if ok, _ := run(d, "aa"); !ok {
		t.Fatalf("expected 'aa' to match")
	}
	s1 := d.Step(d.Start, 'a')
	if s1 == NoTransition {
		t.Fatalf("expected a transition on 'a'")
	}
	s2 := d.Step(s1, 'a')
	if s2 == NoTransition {
		t.Fatalf("expected a second transition on 'a'")
	}
}

func TestBuildUnreachableStatesPruned(t *testing.T) {
	n := mustCompile(t, "ab")
	d, err := Build([]*nfa.NFA{n})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	// "ab" only ever needs 3 reachable configurations: start, after 'a',
	// after 'b' (accept). Anything beyond that would indicate dead
	// unreachable states leaking into the output.
	if d.NumStates() > 3 {
		t.Fatalf("NumStates() = %d, want <= 3 for a 2-byte literal", d.NumStates())
	}
}
