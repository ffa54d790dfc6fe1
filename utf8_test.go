package regexiter

import (
	"errors"
	"slices"
	"testing"
)

// fakeSource lets tests feed the filter byte strings an automaton-backed
// iterator would not produce.
type fakeSource struct {
	items [][]byte
	utf8  bool
	pos   int
}

func (f *fakeSource) Next() ([]byte, bool) {
	if f.pos >= len(f.items) {
		return nil, false
	}
	b := f.items[f.pos]
	f.pos++
	return b, true
}

func (f *fakeSource) IsUTF8() bool { return f.utf8 }

func takeText(u *UTF8Iter, n int) []string {
	var out []string
	for i := 0; i < n; i++ {
		s, ok := u.Next()
		if !ok {
			break
		}
		out = append(out, s)
	}
	return out
}

func TestUTF8RejectsByteOriented(t *testing.T) {
	for _, pattern := range []string{`\xff|a`, `[\xff]`, `a[\x80-\x82]`} {
		it, err := NewNFA(pattern)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := NewUTF8(it); !errors.Is(err, ErrNotUTF8) {
			t.Fatalf("NewUTF8(%q): want ErrNotUTF8, got %v", pattern, err)
		}
	}
}

func TestUTF8SkipsInvalid(t *testing.T) {
	src := &fakeSource{
		items: [][]byte{[]byte("a"), {0xff, 0x30}, []byte("b"), {0xc0}},
		utf8:  true,
	}
	u, err := NewUTF8(src)
	if err != nil {
		t.Fatal(err)
	}
	got := takeText(u, 10)
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("got %q, want valid items only", got)
	}
	// skipping must not end the underlying traversal early
	if src.pos != len(src.items) {
		t.Fatalf("source drained %d of %d items", src.pos, len(src.items))
	}
	if _, ok := u.Next(); ok {
		t.Fatal("exhausted filter yielded again")
	}
}

func TestUTF8Multibyte(t *testing.T) {
	it, err := NewDFA("é|e")
	if err != nil {
		t.Fatal(err)
	}
	u, err := NewUTF8(it)
	if err != nil {
		t.Fatal(err)
	}
	// shortlex over bytes: the one-byte "e" precedes the two-byte "é"
	if got := takeText(u, 5); !slices.Equal(got, []string{"e", "é"}) {
		t.Fatalf("got %q", got)
	}
}

func TestUTF8PreservesDuplicates(t *testing.T) {
	it, err := NewNFA("(a|a)")
	if err != nil {
		t.Fatal(err)
	}
	u, err := NewUTF8(it)
	if err != nil {
		t.Fatal(err)
	}
	if got := takeText(u, 5); !slices.Equal(got, []string{"a", "a"}) {
		t.Fatalf("the filter must not deduplicate, got %q", got)
	}
}
