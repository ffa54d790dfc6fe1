package regexiter

import "fmt"

// PatternError reports that a pattern could not be compiled into the
// requested automaton. It is terminal for the construction call that
// raised it; no partial automaton is exposed.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("compile pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
