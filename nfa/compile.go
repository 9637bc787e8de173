package nfa

import (
	"github.com/Toplogic-Inc/log-surgeon-go/ast"
	"github.com/Toplogic-Inc/log-surgeon-go/lserr"
	"github.com/Toplogic-Inc/log-surgeon-go/symbol"
)

// Compile translates an AST (package ast) into a Thompson NFA, following
// the per-node translation rules: literal/dot/class become a single
// edge, concatenation chains fresh intermediate states, alternation
// fans out through fresh branch endpoints wired by epsilon edges, and
// repetition unrolls mandatory copies followed by an optional tail or
// an unbounded self-loop at the accept state.
//
// Start is always state 0 and Accept is always state 1, matching the
// data-model invariant every downstream consumer (the DFA compiler in
// particular) relies on.
func Compile(root ast.Node) (*NFA, error) {
	b := NewBuilder()
	start := b.NewState() // 0
	accept := b.NewState() // 1
	if err := compileNode(b, root, start, accept); err != nil {
		return nil, err
	}
	return b.Build(start, accept), nil
}

// compileNode wires a fragment for node between the given start and
// accept states, which may already have other edges attached (e.g. the
// outer start/accept of a concatenation).
func compileNode(b *Builder, node ast.Node, start, accept StateID) error {
	switch n := node.(type) {
	case ast.Literal:
		b.AddEdge(start, accept, symbol.RangeMask(n.Byte, n.Byte))
		return nil

	case ast.Dot:
		b.AddEdge(start, accept, symbol.Any)
		return nil

	case ast.Class:
		b.AddEdge(start, accept, n.Mask)
		return nil

	case ast.Concat:
		return compileConcat(b, n, start, accept)

	case ast.Alternate:
		return compileAlternate(b, n, start, accept)

	case ast.Repeat:
		return compileRepeat(b, n, start, accept)

	default:
		return lserr.New(lserr.UnsupportedASTNode, "nfa: unrecognized AST node %T", node)
	}
}

// compileConcat chains fresh intermediate states between start and
// accept, one per sub-expression boundary; the first sub-expression
// starts at the outer start and the last ends at the outer accept.
func compileConcat(b *Builder, n ast.Concat, start, accept StateID) error {
	cur := start
	for i, sub := range n.Subs {
		next := accept
		if i < len(n.Subs)-1 {
			next = b.NewState()
		}
		if err := compileNode(b, sub, cur, next); err != nil {
			return err
		}
		cur = next
	}
	return nil
}

// compileAlternate gives each branch its own pair of fresh endpoints,
// connected to the outer start/accept by epsilon edges, then recurses
// into the branch between them. Branches are wired in source order so
// that edge order mirrors pattern order.
func compileAlternate(b *Builder, n ast.Alternate, start, accept StateID) error {
	for _, branch := range n.Subs {
		bStart := b.NewState()
		bEnd := b.NewState()
		b.AddEpsilon(start, bStart)
		b.AddEpsilon(bEnd, accept)
		if err := compileNode(b, branch, bStart, bEnd); err != nil {
			return err
		}
	}
	return nil
}

// compileRepeat implements the greedy {min,max} translation rule:
// unroll min mandatory copies chained from start, add an
// epsilon skip from start to accept when min == 0, then either a
// self-loop of the sub-pattern at accept (unbounded max) or a chain of
// max-min optional copies each individually skippable straight to
// accept.
func compileRepeat(b *Builder, n ast.Repeat, start, accept StateID) error {
	cur := start
	for i := 0; i < n.Min; i++ {
		// The last mandatory copy ends at accept unless an optional tail
		// follows; the tail then starts from a fresh state so it cannot
		// loop back through accept.
		next := accept
		if i < n.Min-1 || n.Max > n.Min {
			next = b.NewState()
		}
		if err := compileNode(b, n.Sub, cur, next); err != nil {
			return err
		}
		cur = next
	}
	if n.Min == 0 {
		b.AddEpsilon(start, accept)
	}

	switch {
	case n.Max == -1:
		// cur == accept already when min > 0 (the mandatory chain's
		// last copy ends at accept); when min == 0, cur is still start,
		// so the self-loop must be anchored at accept directly - the ε
		// skip above already accounts for the zero-repetitions case.
		loopFrom := cur
		if n.Min == 0 {
			loopFrom = accept
		}
		return compileNode(b, n.Sub, loopFrom, accept)

	case n.Max > n.Min:
		segStart := cur
		optional := n.Max - n.Min
		for i := 0; i < optional; i++ {
			segEnd := accept
			if i < optional-1 {
				segEnd = b.NewState()
			}
			if err := compileNode(b, n.Sub, segStart, segEnd); err != nil {
				return err
			}
			b.AddEpsilon(segStart, accept)
			segStart = segEnd
		}
		return nil

	default:
		return nil
	}
}
