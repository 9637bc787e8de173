// Package dfa subset-constructs a single combined deterministic automaton
// from an ordered vector of NFAs (package nfa). Each DFA state is keyed by
// the set of (nfa_index, nfa_state) pairs reachable after epsilon-closure,
// fusing multiple NFAs into one automaton without state-name collisions,
// following the worklist/dedup-map subset-construction idiom this
// module's NFA-oriented teacher code uses for its own DFA builders.
package dfa

import (
	"encoding/binary"
	"sort"

	"github.com/Toplogic-Inc/log-surgeon-go/internal/sparse"
	"github.com/Toplogic-Inc/log-surgeon-go/nfa"
)

// StateID identifies a DFA state. States are numbered 0..N in creation
// order; Start is always 0.
type StateID int32

// NoTransition marks the absence of an edge for a given byte.
const NoTransition StateID = -1

// NoOrigin marks a non-accepting state in AcceptOrigin.
const NoOrigin int32 = -1

// DFA is the output of Build: a dense, byte-indexed transition table and
// a parallel accept-origin table. It is total over its reachable states
// and deterministic; unreachable states are never materialized.
type DFA struct {
	// Transitions[s][b] is the successor of state s on input byte b, or
	// NoTransition if the DFA has no edge for that byte.
	Transitions [][128]StateID

	// AcceptOrigin[s] is the index into the NFA vector passed to Build
	// whose accept state contributed to s, or NoOrigin if s does not
	// accept. Ties resolve to the lowest NFA index.
	AcceptOrigin []int32

	// Start is always state 0.
	Start StateID
}

// NumStates returns the number of states in the DFA.
func (d *DFA) NumStates() int {
	return len(d.Transitions)
}

// IsAccepting reports whether state s is an accepting state.
func (d *DFA) IsAccepting(s StateID) bool {
	return d.AcceptOrigin[s] != NoOrigin
}

// Step returns the successor of state s on byte b, or NoTransition.
func (d *DFA) Step(s StateID, b byte) StateID {
	if b >= 128 {
		return NoTransition
	}
	return d.Transitions[s][b]
}

// pairSet is a canonicalized, deduplicated, sorted list of encoded
// (nfaIndex, nfaState) pairs. Two DFA states are the same iff their
// pairSets are equal, so pairSet doubles as the subset-construction
// dedup key (via its key() string).
type pairSet []uint32

func (ps pairSet) key() string {
	buf := make([]byte, 4*len(ps))
	for i, p := range ps {
		binary.LittleEndian.PutUint32(buf[i*4:], p)
	}
	return string(buf)
}

// Build runs subset construction over nfas, producing one combined DFA.
// An empty nfas yields a single non-accepting sink state with no
// transitions, per spec.md's zero-NFA edge case.
func Build(nfas []*nfa.NFA) (*DFA, error) {
	seed := make(pairSet, 0, len(nfas))
	for i, n := range nfas {
		seed = append(seed, sparse.EncodePair(i, int(n.Start)))
	}
	seed = closure(nfas, seed)

	stateIndex := map[string]int{}
	var sets []pairSet
	var queue []int

	addState := func(ps pairSet) int {
		k := ps.key()
		if id, ok := stateIndex[k]; ok {
			return id
		}
		id := len(sets)
		stateIndex[k] = id
		sets = append(sets, ps)
		queue = append(queue, id)
		return id
	}
	addState(seed)

	var transitions [][128]StateID
	var acceptOrigin []int32

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		set := sets[id]

		var row [128]StateID
		for b := range row {
			row[b] = NoTransition
		}
		for b := 0; b < 128; b++ {
			var dest pairSet
			for _, p := range set {
				idx, st := sparse.DecodePair(p)
				for _, e := range nfas[idx].StateEdges(nfa.StateID(st)) {
					if !e.IsEpsilon() && e.Mask.Test(byte(b)) {
						dest = append(dest, sparse.EncodePair(idx, int(e.To)))
					}
				}
			}
			if len(dest) == 0 {
				continue
			}
			dest = closure(nfas, dest)
			row[b] = StateID(addState(dest))
		}

		origin := NoOrigin
		for _, p := range set {
			idx, st := sparse.DecodePair(p)
			if nfa.StateID(st) == nfas[idx].Accept {
				if origin == NoOrigin || int32(idx) < origin {
					origin = int32(idx)
				}
			}
		}

		for len(transitions) <= id {
			transitions = append(transitions, [128]StateID{})
			acceptOrigin = append(acceptOrigin, NoOrigin)
		}
		transitions[id] = row
		acceptOrigin[id] = origin
	}

	return &DFA{Transitions: transitions, AcceptOrigin: acceptOrigin, Start: 0}, nil
}

// closure computes the epsilon-closure of set over nfas, returning a
// fresh, sorted, deduplicated pairSet. Membership is tracked with one
// sparse.Set per NFA (each bounded by that NFA's own state count) rather
// than a single set over the full encoded (nfaIndex,nfaState) space,
// which would need a capacity no one can bound in advance.
func closure(nfas []*nfa.NFA, set pairSet) pairSet {
	seen := make([]*sparse.Set, len(nfas))
	for i, n := range nfas {
		seen[i] = sparse.NewSet(n.NumStates())
	}

	var result pairSet
	stack := make([]uint32, 0, len(set))
	push := func(p uint32) {
		idx, st := sparse.DecodePair(p)
		if seen[idx].Contains(uint32(st)) {
			return
		}
		seen[idx].Insert(uint32(st))
		result = append(result, p)
		stack = append(stack, p)
	}
	for _, p := range set {
		push(p)
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		idx, st := sparse.DecodePair(p)
		for _, e := range nfas[idx].StateEdges(nfa.StateID(st)) {
			if e.IsEpsilon() {
				push(sparse.EncodePair(idx, int(e.To)))
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
