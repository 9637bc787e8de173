// Package ast parses the restricted regex dialect this module supports
// into an abstract syntax tree consumed by the nfa package's compiler.
//
// The dialect is: literal ASCII bytes, '.', the Perl classes \d \s \w,
// bracketed classes and ranges (non-negated), grouping "(...)",
// alternation "a|b", concatenation, and greedy repetition {m,n}/{m,}/{m}
// (with '?', '*', '+' as sugar for {0,1}, {0,}, {1,}). Anchors, capture
// groups, backreferences, lookarounds, non-greedy quantifiers, negated
// classes, and non-ASCII literals are rejected with a distinctly-kinded
// error so the schema loader can surface the exact taxonomy entry from
// lserr.
package ast

import "github.com/Toplogic-Inc/log-surgeon-go/symbol"

// Node is a regex AST node. The concrete types below are the only
// inhabitants of this interface; there is deliberately no capture-group,
// anchor, or lookaround node kind, since this dialect does not support them.
type Node interface {
	node()
}

// Literal matches a single ASCII byte exactly.
type Literal struct {
	Byte byte
}

// Dot matches any of the 128 ASCII bytes.
type Dot struct{}

// Class matches any byte whose bit is set in Mask (built from \d \s \w or
// a bracketed range/class).
type Class struct {
	Mask symbol.Mask
}

// Concat matches each of Subs in sequence.
type Concat struct {
	Subs []Node
}

// Alternate matches any one of Subs.
type Alternate struct {
	Subs []Node
}

// Repeat matches Sub repeated between Min and Max times, inclusive.
// Max == -1 means unbounded ({m,}, '*', '+').
type Repeat struct {
	Sub      Node
	Min, Max int
}

func (Literal) node()   {}
func (Dot) node()       {}
func (Class) node()     {}
func (Concat) node()    {}
func (Alternate) node() {}
func (Repeat) node()    {}
