// Package nfa translates a regex AST (package ast) into a Thompson-style
// NFA over the 128-byte ASCII alphabet, using 128-bit symbol masks
// (package symbol) as edge labels instead of byte-range/class states.
package nfa

import "github.com/Toplogic-Inc/log-surgeon-go/symbol"

// StateID uniquely identifies an NFA state. States are allocated
// sequentially starting at 0 and are never reused or deleted.
type StateID uint32

// Edge is a single out-edge of a state: take it on any byte set in Mask.
// Mask's zero value is the empty mask, which this package uses to mean
// an epsilon transition (consumes no input).
type Edge struct {
	To   StateID
	Mask symbol.Mask
}

// IsEpsilon reports whether e is an epsilon (non-consuming) edge.
func (e Edge) IsEpsilon() bool {
	return e.Mask.IsEmpty()
}

// State holds a state's ordered out-edges. Edge order is preserved from
// the AST (branch order in an alternation, for instance); the DFA
// compiler's lowest-NFA-index tie-break does not depend on it, but
// deterministic iteration makes output reproducible for tests.
type State struct {
	Edges []Edge
}

// NFA is an immutable, already-built automaton: Start == 0 and Accept == 1
// by construction (see Compile), a dense state array, and each state's
// out-edges. There is exactly one designated accept state. States are
// never deleted and edge masks are never mutated after Compile returns.
type NFA struct {
	States []State
	Start  StateID
	Accept StateID
}

// NumStates returns the number of states in the NFA.
func (n *NFA) NumStates() int {
	return len(n.States)
}

// StateEdges returns the out-edges of state id.
func (n *NFA) StateEdges(id StateID) []Edge {
	return n.States[id].Edges
}
