package automaton

// span is a run of byte values sharing a successor.
type span struct {
	lo, hi byte
	next   State
}

// SparseDFA is the same deterministic machine as DenseDFA with a
// run-length transition representation: per state a short sorted list of
// byte spans. Lookup scans the list, trading the dense table's O(1) step
// for a fraction of its memory.
type SparseDFA struct {
	rows   [][]span
	accept []bool
	utf8   bool
}

// SparseFromNFA determinizes the Thompson machine into span rows.
func SparseFromNFA(n *NFA) *SparseDFA {
	rows, accept := determinize(n)
	sp := make([][]span, len(rows))
	for i := range rows {
		for b := 0; b < 256; b++ {
			next := rows[i][b]
			if next == DeadState {
				continue
			}
			hi := b
			for hi+1 < 256 && rows[i][hi+1] == next {
				hi++
			}
			sp[i] = append(sp[i], span{lo: byte(b), hi: byte(hi), next: next})
			b = hi
		}
	}
	return &SparseDFA{rows: sp, accept: accept, utf8: n.utf8}
}

// CompileSparse compiles a pattern to a sparse deterministic machine.
func CompileSparse(pattern string) (*SparseDFA, error) {
	return CompileSparseMany([]string{pattern})
}

// CompileSparseMany compiles the union of the patterns to a sparse
// deterministic machine.
func CompileSparseMany(patterns []string) (*SparseDFA, error) {
	n, err := CompileMany(patterns)
	if err != nil {
		return nil, err
	}
	return SparseFromNFA(n), nil
}

func (d *SparseDFA) Start() State { return 1 }

func (d *SparseDFA) IsAccept(s State) bool { return d.accept[s] }

func (d *SparseDFA) CanMatch(s State) bool { return s != DeadState }

func (d *SparseDFA) Step(dst []State, s State, b byte) []State {
	for _, sp := range d.rows[s] {
		if b < sp.lo {
			break
		}
		if b <= sp.hi {
			dst = append(dst, sp.next)
			break
		}
	}
	return dst
}

// IsUTF8 reports whether every accepted string is valid UTF-8.
func (d *SparseDFA) IsUTF8() bool { return d.utf8 }
