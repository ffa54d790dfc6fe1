package automaton

import (
	"fmt"
	"slices"
)

// determinize runs the subset construction over the full byte alphabet.
// Deterministic states are numbered from 1; row 0 is the dead sink. Every
// produced state can reach acceptance, because every subset is a
// non-empty set of Thompson states and those all reach the accept state.
func determinize(n *NFA) (rows [][256]State, accept []bool) {
	rows = make([][256]State, 2) // dead row + start row
	accept = make([]bool, 2)

	startSet := n.closure[n.start]
	accept[1] = subsetAccepts(n, startSet)

	index := map[string]State{subsetKey(startSet): 1}
	type work struct {
		id  State
		set []int
	}
	queue := []work{{id: 1, set: startSet}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for b := 0; b < 256; b++ {
			var targets []int
			for _, st := range cur.set {
				for _, e := range n.edges[st] {
					if !e.eps && e.lo <= byte(b) && byte(b) <= e.hi {
						targets = append(targets, n.closure[e.to]...)
					}
				}
			}
			if len(targets) == 0 {
				continue
			}
			slices.Sort(targets)
			targets = slices.Compact(targets)
			key := subsetKey(targets)
			id, ok := index[key]
			if !ok {
				id = State(len(rows))
				index[key] = id
				rows = append(rows, [256]State{})
				accept = append(accept, subsetAccepts(n, targets))
				queue = append(queue, work{id: id, set: targets})
			}
			rows[cur.id][b] = id
		}
	}
	return rows, accept
}

func subsetKey(set []int) string { return fmt.Sprint(set) }

func subsetAccepts(n *NFA, set []int) bool {
	for _, st := range set {
		if n.accepts[st] {
			return true
		}
	}
	return false
}

// DenseDFA is the deterministic machine with a flat transition table
// directly indexed by (state, byte): one lookup per step, 256 entries of
// memory per state. Two distinct byte sequences always land in distinct
// live states or diverge into the sink, so enumeration over a DenseDFA
// never produces the same string twice.
type DenseDFA struct {
	table  []State // (numStates+1)*256, row 0 is the sink
	accept []bool
	utf8   bool
}

// DenseFromNFA determinizes the Thompson machine into a dense table.
func DenseFromNFA(n *NFA) *DenseDFA {
	rows, accept := determinize(n)
	table := make([]State, len(rows)*256)
	for i := range rows {
		copy(table[i*256:], rows[i][:])
	}
	return &DenseDFA{table: table, accept: accept, utf8: n.utf8}
}

// CompileDense compiles a pattern straight to a dense deterministic
// machine.
func CompileDense(pattern string) (*DenseDFA, error) {
	return CompileDenseMany([]string{pattern})
}

// CompileDenseMany compiles the union of the patterns to a dense
// deterministic machine.
func CompileDenseMany(patterns []string) (*DenseDFA, error) {
	n, err := CompileMany(patterns)
	if err != nil {
		return nil, err
	}
	return DenseFromNFA(n), nil
}

func (d *DenseDFA) Start() State { return 1 }

func (d *DenseDFA) IsAccept(s State) bool { return d.accept[s] }

func (d *DenseDFA) CanMatch(s State) bool { return s != DeadState }

func (d *DenseDFA) Step(dst []State, s State, b byte) []State {
	if next := d.table[int(s)<<8|int(b)]; next != DeadState {
		dst = append(dst, next)
	}
	return dst
}

// IsUTF8 reports whether every accepted string is valid UTF-8.
func (d *DenseDFA) IsUTF8() bool { return d.utf8 }
