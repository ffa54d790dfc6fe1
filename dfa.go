package regexiter

import (
	"strings"

	"regexiter/internal/automaton"
)

// NewDFA compiles the pattern to a deterministic machine with a dense
// transition table and returns an iterator over its language. Dense
// rows cost 256 entries per state but make every step a single indexed
// lookup, and determinism guarantees that no string is ever yielded
// twice.
func NewDFA(pattern string) (*Iter, error) {
	m, err := automaton.CompileDense(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return newIter(m, m.IsUTF8()), nil
}

// NewDFAMany is NewDFA over the union of the patterns' languages.
func NewDFAMany(patterns []string) (*Iter, error) {
	m, err := automaton.CompileDenseMany(patterns)
	if err != nil {
		return nil, &PatternError{Pattern: strings.Join(patterns, "|"), Err: err}
	}
	return newIter(m, m.IsUTF8()), nil
}

// NewSparseDFA is NewDFA with a run-length transition representation:
// slower steps, far less memory for machines with large alphabet gaps.
// Output uniqueness and order are identical to NewDFA.
func NewSparseDFA(pattern string) (*Iter, error) {
	m, err := automaton.CompileSparse(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return newIter(m, m.IsUTF8()), nil
}

// NewSparseDFAMany is NewSparseDFA over the union of the patterns.
func NewSparseDFAMany(patterns []string) (*Iter, error) {
	m, err := automaton.CompileSparseMany(patterns)
	if err != nil {
		return nil, &PatternError{Pattern: strings.Join(patterns, "|"), Err: err}
	}
	return newIter(m, m.IsUTF8()), nil
}
