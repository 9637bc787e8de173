package nfa

import "github.com/Toplogic-Inc/log-surgeon-go/symbol"

// Builder constructs an NFA incrementally: allocate states with NewState,
// wire them with AddEdge, then finish with Build. Compile is the only
// caller; Builder itself knows nothing about the AST it is serving.
type Builder struct {
	states []State
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 16)}
}

// NewState allocates a fresh state with no out-edges and returns its ID.
// IDs are handed out sequentially starting at 0.
func (b *Builder) NewState() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{})
	return id
}

// AddEdge adds an out-edge from -> to labelled with mask. A zero mask
// (symbol.Empty) denotes an epsilon edge. Edges are appended in call
// order, so callers that care about branch priority (e.g. alternation)
// should add them in the order priority should be preserved.
func (b *Builder) AddEdge(from, to StateID, mask symbol.Mask) {
	b.states[from].Edges = append(b.states[from].Edges, Edge{To: to, Mask: mask})
}

// AddEpsilon adds an epsilon edge from -> to.
func (b *Builder) AddEpsilon(from, to StateID) {
	b.AddEdge(from, to, symbol.Empty)
}

// Build finalizes the NFA with the given start and accept states.
func (b *Builder) Build(start, accept StateID) *NFA {
	return &NFA{States: b.states, Start: start, Accept: accept}
}
