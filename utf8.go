package regexiter

import (
	"errors"
	"unicode/utf8"
)

// ErrNotUTF8 means the source automaton can accept byte strings that are
// not valid UTF-8, so a text view over it would be misleading. Raised at
// construction only; see NewUTF8.
var ErrNotUTF8 = errors.New("pattern can match strings that are not valid UTF-8")

// ByteSource is what the UTF-8 filter wraps: a pull sequence of byte
// strings that knows whether its automaton is confined to valid UTF-8.
type ByteSource interface {
	Next() ([]byte, bool)
	IsUTF8() bool
}

// UTF8Iter narrows a byte-string sequence to text. It preserves the
// source's laziness, order and uniqueness guarantees; it adds none of its
// own. In particular, wrapping an NFA iterator does not deduplicate its
// outputs.
type UTF8Iter struct {
	src ByteSource
}

// NewUTF8 wraps src, failing with ErrNotUTF8 if the source automaton is
// not confined to valid UTF-8.
func NewUTF8(src ByteSource) (*UTF8Iter, error) {
	if !src.IsUTF8() {
		return nil, ErrNotUTF8
	}
	return &UTF8Iter{src: src}, nil
}

// Next returns the next accepted string as text. Byte strings that are
// not well-formed UTF-8 are skipped, never surfaced as errors: a
// malformed candidate is an expected outcome of enumeration, not an
// exceptional one. The source is drained past skipped items, so pulling
// n strings may examine more than n underlying outputs; false is
// returned only once the source itself is exhausted.
func (u *UTF8Iter) Next() (string, bool) {
	for {
		b, ok := u.src.Next()
		if !ok {
			return "", false
		}
		if utf8.Valid(b) {
			return string(b), true
		}
	}
}
