package automaton

import (
	"errors"
	"slices"
	"unicode/utf8"
)

// nfaEdge is a transition of the Thompson machine: either an ε edge or a
// byte-range edge covering lo..hi inclusive.
type nfaEdge struct {
	eps    bool
	lo, hi byte
	to     int
}

// frag is a partially built machine: a start state plus the dangling
// states whose continuation has not been patched in yet.
type frag struct {
	start int
	outs  []int
}

type nfaBuilder struct {
	edges [][]nfaEdge
	utf8  bool
}

func (b *nfaBuilder) state() int {
	b.edges = append(b.edges, nil)
	return len(b.edges) - 1
}

func (b *nfaBuilder) byteEdge(from int, lo, hi byte, to int) {
	b.edges[from] = append(b.edges[from], nfaEdge{lo: lo, hi: hi, to: to})
}

func (b *nfaBuilder) epsEdge(from, to int) {
	b.edges[from] = append(b.edges[from], nfaEdge{eps: true, to: to})
}

// patch connects every dangling out state to the continuation.
func (b *nfaBuilder) patch(outs []int, to int) {
	for _, s := range outs {
		b.epsEdge(s, to)
	}
}

/* ----------------------- AST to Thompson fragments ----------------------- */

func (a *altExpr) compile(b *nfaBuilder) (frag, error) {
	f, err := a.First.compile(b)
	if err != nil {
		return frag{}, err
	}
	for _, alt := range a.Rest {
		g, err := alt.compile(b)
		if err != nil {
			return frag{}, err
		}
		head := b.state()
		b.epsEdge(head, f.start)
		b.epsEdge(head, g.start)
		f = frag{start: head, outs: append(f.outs, g.outs...)}
	}
	return f, nil
}

func (s *seqExpr) compile(b *nfaBuilder) (frag, error) {
	if len(s.Terms) == 0 {
		// ε
		st := b.state()
		return frag{start: st, outs: []int{st}}, nil
	}
	f, err := s.Terms[0].compile(b)
	if err != nil {
		return frag{}, err
	}
	for _, t := range s.Terms[1:] {
		g, err := t.compile(b)
		if err != nil {
			return frag{}, err
		}
		b.patch(f.outs, g.start)
		f = frag{start: f.start, outs: g.outs}
	}
	return f, nil
}

func (t *termExpr) compile(b *nfaBuilder) (frag, error) {
	return t.compileQuants(b, len(t.Quants))
}

// compileQuants applies the first n quantifiers to the atom. Counted
// repeats recompile the inner fragment per copy: {m,n} becomes m
// concatenated copies followed by n-m optional ones.
func (t *termExpr) compileQuants(b *nfaBuilder, n int) (frag, error) {
	if n == 0 {
		return t.Atom.compile(b)
	}
	inner := func() (frag, error) { return t.compileQuants(b, n-1) }
	q := t.Quants[n-1]
	switch {
	case q.Star:
		f, err := inner()
		if err != nil {
			return frag{}, err
		}
		return starFrag(b, f), nil
	case q.Plus:
		f, err := inner()
		if err != nil {
			return frag{}, err
		}
		b.patch(f.outs, f.start)
		return f, nil
	case q.Opt:
		f, err := inner()
		if err != nil {
			return frag{}, err
		}
		head := b.state()
		b.epsEdge(head, f.start)
		return frag{start: head, outs: append(f.outs, head)}, nil
	default:
		min, max, err := q.Range.bounds()
		if err != nil {
			return frag{}, err
		}
		return repeatFrag(b, inner, min, max)
	}
}

func starFrag(b *nfaBuilder, f frag) frag {
	head := b.state()
	b.patch(f.outs, head)
	b.epsEdge(head, f.start)
	return frag{start: head, outs: []int{head}}
}

func repeatFrag(b *nfaBuilder, build func() (frag, error), min, max int) (frag, error) {
	var f frag
	if min == 0 {
		st := b.state()
		f = frag{start: st, outs: []int{st}}
	} else {
		for i := 0; i < min; i++ {
			piece, err := build()
			if err != nil {
				return frag{}, err
			}
			if i == 0 {
				f = piece
			} else {
				b.patch(f.outs, piece.start)
				f.outs = piece.outs
			}
		}
	}
	if max == -1 {
		piece, err := build()
		if err != nil {
			return frag{}, err
		}
		tail := starFrag(b, piece)
		b.patch(f.outs, tail.start)
		return frag{start: f.start, outs: tail.outs}, nil
	}
	for i := min; i < max; i++ {
		piece, err := build()
		if err != nil {
			return frag{}, err
		}
		skip := b.state()
		b.patch(f.outs, skip)
		b.patch(f.outs, piece.start)
		f.outs = append(piece.outs, skip)
	}
	return f, nil
}

func (a *atomExpr) compile(b *nfaBuilder) (frag, error) {
	switch {
	case a.Group != nil:
		return a.Group.compile(b)
	case a.Class != nil:
		return a.Class.compile(b)
	default:
		sym, err := decodeText(*a.Text)
		if err != nil {
			return frag{}, err
		}
		return symbolFrag(b, sym), nil
	}
}

// symbolFrag compiles a single literal. Runes become chains over their
// UTF-8 encoding; raw bytes become one edge and taint the UTF-8 flag.
func symbolFrag(b *nfaBuilder, sym symbol) frag {
	start := b.state()
	if sym.raw {
		b.utf8 = false
		end := b.state()
		b.byteEdge(start, sym.b, sym.b, end)
		return frag{start: start, outs: []int{end}}
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], sym.r)
	cur := start
	for i := 0; i < n; i++ {
		next := b.state()
		b.byteEdge(cur, buf[i], buf[i], next)
		cur = next
	}
	return frag{start: start, outs: []int{cur}}
}

func (c *classExpr) compile(b *nfaBuilder) (frag, error) {
	var single [256]bool // single-byte members
	var multi []rune     // members needing a multi-byte encoding
	rawSeen := false

	add := func(sym symbol) {
		switch {
		case sym.raw:
			single[sym.b] = true
			rawSeen = true
			b.utf8 = false
		case sym.r < 0x80:
			single[sym.r] = true
		default:
			multi = append(multi, sym.r)
		}
	}

	for _, item := range c.Items {
		lo, err := decodeText(item.Lo)
		if err != nil {
			return frag{}, err
		}
		if item.Hi == nil {
			add(lo)
			continue
		}
		hi, err := decodeText(*item.Hi)
		if err != nil {
			return frag{}, err
		}
		switch {
		case lo.raw && hi.raw:
			if hi.b < lo.b {
				return frag{}, errors.New("invalid class range: upper bound below lower")
			}
			for v := int(lo.b); v <= int(hi.b); v++ {
				add(symbol{b: byte(v), raw: true})
			}
		case !lo.raw && !hi.raw:
			if hi.r < lo.r {
				return frag{}, errors.New("invalid class range: upper bound below lower")
			}
			// ranges expand member by member
			for r := lo.r; r <= hi.r; r++ {
				add(symbol{r: r})
			}
		default:
			return frag{}, errors.New("invalid class range: mixed rune and byte bounds")
		}
	}

	if c.Negate {
		if len(multi) > 0 || rawSeen {
			return frag{}, errors.New("cannot negate a class with non-ASCII members")
		}
		// complement over ASCII
		for v := 0; v < 128; v++ {
			single[v] = !single[v]
		}
		for v := 128; v < 256; v++ {
			single[v] = false
		}
	}

	start := b.state()
	end := b.state()
	for lo := 0; lo < 256; lo++ {
		if !single[lo] {
			continue
		}
		hi := lo
		for hi+1 < 256 && single[hi+1] {
			hi++
		}
		b.byteEdge(start, byte(lo), byte(hi), end)
		lo = hi
	}
	for _, r := range multi {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		cur := start
		for i := 0; i < n-1; i++ {
			next := b.state()
			b.byteEdge(cur, buf[i], buf[i], next)
			cur = next
		}
		b.byteEdge(cur, buf[n-1], buf[n-1], end)
	}
	return frag{start: start, outs: []int{end}}, nil
}

/* ------------------------------ NFA machine ------------------------------ */

// NFA is a byte-level Thompson machine. A configuration is a single state
// id; Step ranges over the precomputed ε-closure of the configuration, so
// several entries of an enumeration frontier may denote the same language
// position reached along different paths. That is the documented
// trade-off of this backend: small configurations, duplicate outputs
// possible.
type NFA struct {
	edges   [][]nfaEdge
	start   int
	utf8    bool
	closure [][]int // sorted ε-closure per state
	accepts []bool  // closure reaches the accept state
}

// Compile builds the Thompson machine for a single pattern.
func Compile(pattern string) (*NFA, error) {
	return CompileMany([]string{pattern})
}

// CompileMany builds one machine accepting the union of the patterns.
func CompileMany(patterns []string) (*NFA, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no patterns")
	}
	b := &nfaBuilder{utf8: true}
	frags := make([]frag, 0, len(patterns))
	for _, pat := range patterns {
		if pat == "" {
			return nil, errors.New("empty pattern")
		}
		ast, err := parsePattern(pat)
		if err != nil {
			return nil, err
		}
		f, err := ast.compile(b)
		if err != nil {
			return nil, err
		}
		frags = append(frags, f)
	}

	start := frags[0].start
	if len(frags) > 1 {
		start = b.state()
		for _, f := range frags {
			b.epsEdge(start, f.start)
		}
	}
	accept := b.state()
	for _, f := range frags {
		b.patch(f.outs, accept)
	}

	n := &NFA{
		edges:   b.edges,
		start:   start,
		utf8:    b.utf8,
		closure: make([][]int, len(b.edges)),
		accepts: make([]bool, len(b.edges)),
	}
	for i := range b.edges {
		cl := epsilonClosure(b.edges, i)
		n.closure[i] = cl
		n.accepts[i] = slices.Contains(cl, accept)
	}
	return n, nil
}

// epsilonClosure returns the sorted set of states reachable from s over ε
// edges alone, including s itself.
func epsilonClosure(edges [][]nfaEdge, s int) []int {
	seen := map[int]bool{s: true}
	stack := []int{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range edges[cur] {
			if e.eps && !seen[e.to] {
				seen[e.to] = true
				stack = append(stack, e.to)
			}
		}
	}
	out := make([]int, 0, len(seen))
	for st := range seen {
		out = append(out, st)
	}
	slices.Sort(out)
	return out
}

func (n *NFA) Start() State { return State(n.start) }

func (n *NFA) IsAccept(s State) bool { return n.accepts[s] }

// CanMatch is always true: every state of a Thompson construction leads
// to the accept state, so there is nothing to prune.
func (n *NFA) CanMatch(State) bool { return true }

func (n *NFA) Step(dst []State, s State, b byte) []State {
	base := len(dst)
	for _, st := range n.closure[s] {
		for _, e := range n.edges[st] {
			if !e.eps && e.lo <= b && b <= e.hi {
				dst = append(dst, State(e.to))
			}
		}
	}
	tail := dst[base:]
	slices.Sort(tail)
	tail = slices.Compact(tail)
	return dst[:base+len(tail)]
}

// IsUTF8 reports whether every string the machine accepts is valid UTF-8.
// It is false exactly when the pattern used a raw byte escape at or above
// 0x80.
func (n *NFA) IsUTF8() bool { return n.utf8 }
