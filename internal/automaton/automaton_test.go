package automaton

import (
	"strings"
	"testing"
)

// run feeds a string through any machine byte by byte, tracking the full
// configuration set, and reports whether it accepts.
func run(m Automaton, input string) bool {
	states := []State{m.Start()}
	for i := 0; i < len(input); i++ {
		var next []State
		for _, s := range states {
			next = m.Step(next, s, input[i])
		}
		if len(next) == 0 {
			return false
		}
		states = next
	}
	for _, s := range states {
		if m.IsAccept(s) {
			return true
		}
	}
	return false
}

// machines compiles the pattern with every backend.
func machines(t *testing.T, pattern string) map[string]Automaton {
	t.Helper()
	n, err := Compile(pattern)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return map[string]Automaton{
		"nfa":    n,
		"dense":  DenseFromNFA(n),
		"sparse": SparseFromNFA(n),
	}
}

func TestAcceptance(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{
			pattern: "a|bc*",
			accept:  []string{"a", "b", "bc", "bccc"},
			reject:  []string{"", "ab", "c", "ba"},
		},
		{
			pattern: "[a-c]+",
			accept:  []string{"a", "abcabc", "ccc"},
			reject:  []string{"", "d", "abd"},
		},
		{
			pattern: "(ab|a)*c",
			accept:  []string{"c", "ac", "abc", "aababc"},
			reject:  []string{"", "ab", "bc"},
		},
		{
			pattern: "a{2,3}",
			accept:  []string{"aa", "aaa"},
			reject:  []string{"", "a", "aaaa"},
		},
		{
			pattern: "a{2,}",
			accept:  []string{"aa", "aaa", "aaaaaa"},
			reject:  []string{"", "a", "ab"},
		},
		{
			pattern: "foo|(bar){1,2}|quux",
			accept:  []string{"foo", "bar", "barbar", "quux"},
			reject:  []string{"", "fo", "barbarbar", "quu"},
		},
		{
			pattern: `a\+b?`,
			accept:  []string{"a+", "a+b"},
			reject:  []string{"ab", "a+bb"},
		},
		{
			pattern: "[^ab]",
			accept:  []string{"c", "z", " ", "0"},
			reject:  []string{"", "a", "b", "cc"},
		},
		{
			pattern: "é|ß",
			accept:  []string{"é", "ß"},
			reject:  []string{"", "e", "éß"},
		},
		{
			pattern: `\xff(a|b)`,
			accept:  []string{"\xffa", "\xffb"},
			reject:  []string{"a", "\xff"},
		},
		{
			pattern: "(0|1){2}-(0|1)",
			accept:  []string{"00-1", "11-0"},
			reject:  []string{"0-1", "00-"},
		},
	}

	for _, tt := range tests {
		for name, m := range machines(t, tt.pattern) {
			for _, s := range tt.accept {
				if !run(m, s) {
					t.Errorf("%s machine for %q should accept %q", name, tt.pattern, s)
				}
			}
			for _, s := range tt.reject {
				if run(m, s) {
					t.Errorf("%s machine for %q should reject %q", name, tt.pattern, s)
				}
			}
		}
	}
}

func TestCompileErrors(t *testing.T) {
	bad := []string{
		"",
		"(",
		"(a",
		"a)",
		"[a-",
		"[]",
		"a{",
		"a{,2}",
		"a{3,2}",
		"a{1001}",
		"a{2,1001}",
		"a{99999999999999999999}",
		"[z-a]",
		`[^\xff]`,
	}
	for _, pattern := range bad {
		if _, err := Compile(pattern); err == nil {
			t.Errorf("Compile(%q) should fail", pattern)
		}
	}
}

func TestCompileMany(t *testing.T) {
	n, err := CompileMany([]string{"[0-1]+", "[a-b]+"})
	if err != nil {
		t.Fatal(err)
	}
	d := DenseFromNFA(n)
	for _, s := range []string{"0", "101", "a", "bab"} {
		if !run(d, s) {
			t.Errorf("union machine should accept %q", s)
		}
	}
	for _, s := range []string{"", "0a", "c"} {
		if run(d, s) {
			t.Errorf("union machine should reject %q", s)
		}
	}

	if _, err := CompileMany(nil); err == nil {
		t.Error("CompileMany(nil) should fail")
	}
}

func TestIsUTF8(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"abc", true},
		{"é+", true},
		{`\x41`, true}, // ASCII byte escape stays text
		{`\xff`, false},
		{`[\xff]`, false},
		{`[a\x80]`, false},
		{`[\x80-\x82]`, false},
		{`a|\xC0`, false},
	}
	for _, tt := range tests {
		n, err := Compile(tt.pattern)
		if err != nil {
			t.Fatalf("compile %q: %v", tt.pattern, err)
		}
		if n.IsUTF8() != tt.want {
			t.Errorf("IsUTF8(%q) = %v, want %v", tt.pattern, n.IsUTF8(), tt.want)
		}
		if got := DenseFromNFA(n).IsUTF8(); got != tt.want {
			t.Errorf("dense IsUTF8(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestDeadStatePruned(t *testing.T) {
	d, err := CompileDense("ab")
	if err != nil {
		t.Fatal(err)
	}
	if succ := d.Step(nil, d.Start(), 'x'); len(succ) != 0 {
		t.Fatalf("step into the sink should yield no successor, got %v", succ)
	}
	if d.CanMatch(DeadState) {
		t.Error("the sink must not CanMatch")
	}
	if !d.CanMatch(d.Start()) {
		t.Error("the start state must CanMatch")
	}
}

func TestEscapes(t *testing.T) {
	m, err := Compile(`a\nb\t\\`)
	if err != nil {
		t.Fatal(err)
	}
	if !run(m, "a\nb\t\\") {
		t.Error("escaped control characters should round-trip")
	}
	if run(m, "anbt\\") {
		t.Error("escapes must not match their source characters")
	}
}

func TestExportDOT(t *testing.T) {
	n, err := Compile("[ab]")
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	ExportDOT(&sb, DenseFromNFA(n))
	out := sb.String()
	for _, want := range []string{"digraph G {", "doublecircle", "a-b", "_start"} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}
