package regexiter

import (
	"io"

	"regexiter/internal/automaton"
)

// entry is one pending position of the search frontier: where the
// traversal is, and the bytes consumed to get there.
type entry struct {
	state automaton.State
	str   []byte
}

// Iter lazily enumerates the byte strings accepted by a compiled
// automaton, in shortlex order: shorter strings first, byte-lexicographic
// within a length. The sequence is infinite when the pattern contains
// unbounded repetition; the caller paces the work by how many outputs it
// pulls.
//
// An Iter is single-owner state. It is not safe for concurrent use and
// cannot be restarted; build a new one instead.
type Iter struct {
	m     automaton.Automaton
	utf8  bool
	queue []entry
	succ  []automaton.State // scratch for Step
}

func newIter(m automaton.Automaton, utf8OK bool) *Iter {
	return &Iter{
		m:     m,
		utf8:  utf8OK,
		queue: []entry{{state: m.Start()}},
	}
}

// Next returns the next accepted string, or false when the language is
// exhausted. Exhaustion is stable: every later call keeps returning
// false. The empty string, when accepted, is returned as a nil slice
// with ok true.
//
// Each call pops frontier entries until one is accepting. A popped entry
// is expanded first: for every byte 0..255 in increasing order its
// successors are appended to the back of the queue, which is what makes
// the output order shortlex. Successors from which no accepting state is
// reachable are dropped, so a finite language drains the queue instead
// of circling its automaton's dead sink forever.
func (it *Iter) Next() ([]byte, bool) {
	for len(it.queue) > 0 {
		head := it.queue[0]
		it.queue = it.queue[1:]

		accepted := it.m.IsAccept(head.state)

		for b := 0; b < 256; b++ {
			it.succ = it.m.Step(it.succ[:0], head.state, byte(b))
			for _, t := range it.succ {
				if !it.m.CanMatch(t) {
					continue
				}
				buf := make([]byte, len(head.str)+1)
				copy(buf, head.str)
				buf[len(head.str)] = byte(b)
				it.queue = append(it.queue, entry{state: t, str: buf})
			}
		}

		if accepted {
			return head.str, true
		}
	}
	return nil, false
}

// IsUTF8 reports whether every string this iterator can yield is valid
// UTF-8. NewUTF8 requires it.
func (it *Iter) IsUTF8() bool { return it.utf8 }

// WriteDot writes the underlying machine as Graphviz DOT.
func (it *Iter) WriteDot(w io.Writer) { automaton.ExportDOT(w, it.m) }
