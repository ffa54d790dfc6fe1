// Package automaton compiles regular expression patterns into byte-level
// finite automata and exposes them through a small traversal capability.
//
// The capability is deliberately minimal: a start configuration, a
// transition function over single bytes, and an acceptance predicate.
// Deterministic and nondeterministic machines implement the same
// interface; the deterministic ones simply never yield more than one
// successor per step.
package automaton

// State identifies a configuration of a machine. States are opaque to
// callers: only the machine that produced a State may interpret it.
type State uint32

// DeadState is the sink of a deterministic machine, the state from which
// no accepting state is reachable. Nondeterministic machines have no
// sink; they signal "no continuation" with an empty successor set.
const DeadState State = 0

// Automaton is the traversal contract shared by the NFA and the DFA
// variants.
//
// Properties:
//   - transitions are labeled with single bytes (0..255)
//   - states are cheap values, never mutated by the caller
//   - deterministic machines append at most one successor per Step
type Automaton interface {
	// Start returns the initial configuration.
	Start() State

	// Step appends to dst every configuration reachable from state on
	// input b and returns the extended slice. Deterministic machines
	// append at most one state and never append DeadState.
	Step(dst []State, state State, b byte) []State

	// IsAccept reports whether the configuration denotes a complete,
	// accepted string.
	IsAccept(state State) bool

	// CanMatch reports whether any accepting state is reachable from
	// this configuration in zero or more steps. Used for pruning.
	CanMatch(state State) bool
}
