// ABOUTME: StateType enumeration and the topology-driven classifier that derives a
// ABOUTME: state's semantic role from its incident edges and the non-word set.
package lattice

import "fmt"

// FinalLabel is the conventional end-of-sequence output symbol. Any state
// with an incoming edge outputting this label is a final state.
const FinalLabel = "</s>"

// StateType is the semantic role of a lattice state, derived on demand from
// graph topology; it is never stored on the graph.
type StateType int

const (
	// StateInitial is a state with no incoming edges.
	StateInitial StateType = iota
	// StateFinal is a state with an incoming edge outputting FinalLabel.
	StateFinal
	// StateGoal is a state with at least one word-bearing outgoing edge.
	StateGoal
	// StateIntermediate is a state whose outgoing edges all carry non-word labels.
	StateIntermediate
)

// String returns a human-readable name for the state type.
func (t StateType) String() string {
	switch t {
	case StateInitial:
		return "INITIAL"
	case StateFinal:
		return "FINAL"
	case StateGoal:
		return "GOAL"
	case StateIntermediate:
		return "INTERMEDIATE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
}

// Classify derives the semantic role of a state from its incident edges in g,
// given the configured non-word labels. A nil nonwords set is legal and means
// the word/non-word distinction cannot be made: every non-initial, non-final
// state is then a goal state.
//
// Rules, in strict order:
//  1. no incoming edges: INITIAL
//  2. any incoming edge outputs FinalLabel: FINAL
//  3. nonwords absent: GOAL
//  4. no outgoing edges: *MalformedStateError (the lattice is malformed)
//  5. any outgoing edge's symbol is not a non-word: GOAL
//  6. otherwise: INTERMEDIATE
//
// Classify is a pure function of its arguments; it is safe to call repeatedly
// but the result may change if g or nonwords is mutated between calls.
func Classify(state int, g *Graph, nonwords *NonwordSet) (StateType, error) {
	inEdges := g.InEdges(state)
	if len(inEdges) == 0 {
		return StateInitial, nil
	}

	for _, e := range inEdges {
		if e.OutputSymbol == FinalLabel {
			return StateFinal, nil
		}
	}

	if nonwords == nil {
		return StateGoal, nil
	}

	outEdges := g.OutEdges(state)
	if len(outEdges) == 0 {
		return 0, &MalformedStateError{State: state}
	}

	for _, e := range outEdges {
		if !nonwords.Contains(e.OutputSymbol) {
			return StateGoal, nil
		}
	}
	return StateIntermediate, nil
}
