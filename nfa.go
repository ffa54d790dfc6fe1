package regexiter

import (
	"strings"

	"regexiter/internal/automaton"
)

// NewNFA compiles the pattern to a Thompson NFA and returns an iterator
// over its language.
//
// The NFA backend keeps configurations as single automaton states, so
// the frontier stays small, but two frontier entries can denote the same
// language position reached along different nondeterministic paths. The
// trade-off is deliberate: low memory, duplicate outputs possible. Use
// NewDFA when uniqueness matters.
func NewNFA(pattern string) (*Iter, error) {
	m, err := automaton.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return newIter(m, m.IsUTF8()), nil
}

// NewNFAMany returns an iterator over the union of the patterns'
// languages, with the same duplicate caveat as NewNFA.
func NewNFAMany(patterns []string) (*Iter, error) {
	m, err := automaton.CompileMany(patterns)
	if err != nil {
		return nil, &PatternError{Pattern: strings.Join(patterns, "|"), Err: err}
	}
	return newIter(m, m.IsUTF8()), nil
}
