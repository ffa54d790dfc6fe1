// Package regexiter enumerates, lazily and in a well-defined order, the
// strings accepted by a regular expression.
//
// Given a pattern, the package compiles it to a byte-level finite
// automaton and walks the automaton breadth first, yielding every
// accepted byte string in shortlex order: non-decreasing length, and
// byte-lexicographic within a length. Patterns with unbounded repetition
// have infinite languages; the iterators are pull-based, so the caller
// decides how far to go.
//
//	it, err := regexiter.NewDFA(`a+(0|1)`)
//	if err != nil {
//		// *PatternError: the pattern did not compile
//	}
//	for i := 0; i < 6; i++ {
//		s, _ := it.Next()
//		fmt.Printf("%s\n", s)
//	}
//	// a0 a1 aa0 aa1 aaa0 aaa1
//
// Three backends share one enumeration engine. NewNFA walks the Thompson
// machine directly: cheap to build, small frontier, but distinct
// nondeterministic paths to the same string each yield it, so duplicates
// are possible. NewDFA determinizes into a dense byte-indexed table:
// more memory, strictly unique outputs. NewSparseDFA is the same machine
// with run-length rows. NewUTF8 narrows any of them to a text sequence,
// silently skipping byte strings that are not well-formed UTF-8.
//
// Matching is whole-string: the enumerated language is exactly the set
// of strings the pattern matches in full. Anchors, capture groups and
// backreferences are not supported.
package regexiter
