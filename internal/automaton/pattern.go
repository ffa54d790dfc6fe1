package automaton

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Token set for the pattern grammar. Order matters: the raw byte escape
// must win over the generic escape, and metacharacters over plain chars.
var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "RawByte", Pattern: `\\x[0-9a-fA-F]{2}`},
	{Name: "Escaped", Pattern: `\\.`},
	{Name: "Digit", Pattern: `[0-9]`},
	{Name: "Meta", Pattern: `[|*+?(){}\[\],^-]`},
	{Name: "Char", Pattern: `[^\x00]`},
})

// Grammar. One struct per production, participle struct-tag style.
// Alternation has the lowest precedence, then concatenation, then the
// postfix quantifiers.

type altExpr struct {
	First *seqExpr   `parser:"@@"`
	Rest  []*seqExpr `parser:"( '|' @@ )*"`
}

type seqExpr struct {
	Terms []*termExpr `parser:"@@*"`
}

type termExpr struct {
	Atom   *atomExpr    `parser:"@@"`
	Quants []*quantExpr `parser:"@@*"`
}

type quantExpr struct {
	Star  bool       `parser:"  @'*'"`
	Plus  bool       `parser:"| @'+'"`
	Opt   bool       `parser:"| @'?'"`
	Range *rangeExpr `parser:"| @@"`
}

type rangeExpr struct {
	Min   []string `parser:"'{' @Digit+"`
	Comma bool     `parser:"( @','"`
	Max   []string `parser:"@Digit* )? '}'"`
}

type atomExpr struct {
	Group *altExpr   `parser:"'(' @@ ')'"`
	Class *classExpr `parser:"| @@"`
	// ^ , and - are only special inside classes and braces; elsewhere
	// they are ordinary characters.
	Text *string `parser:"| @(Char | Escaped | RawByte | Digit | ',' | '^' | '-')"`
}

type classExpr struct {
	Negate bool         `parser:"'[' @'^'?"`
	Items  []*classItem `parser:"@@+ ']'"`
}

type classItem struct {
	Lo string  `parser:"@(Char | Escaped | RawByte | Digit | ',' | '^' | '-')"`
	Hi *string `parser:"( '-' @(Char | Escaped | RawByte | Digit) )?"`
}

var patternParser = participle.MustBuild[altExpr](
	participle.Lexer(patternLexer),
	participle.UseLookahead(2),
)

func parsePattern(pattern string) (*altExpr, error) {
	ast, err := patternParser.ParseString("", pattern)
	if err != nil {
		return nil, err
	}
	return ast, nil
}

// symbol is a decoded class member or literal: either a rune (encoded to
// its UTF-8 bytes during NFA construction) or a raw byte from a \xHH
// escape. Raw bytes above 0x7F are what make a pattern non-UTF-8.
type symbol struct {
	r   rune
	b   byte
	raw bool
}

// decodeText turns a captured literal token (Char, Escaped, RawByte or a
// demoted metacharacter) into a symbol.
func decodeText(s string) (symbol, error) {
	if len(s) >= 2 && s[0] == '\\' {
		if s[1] == 'x' {
			v, err := strconv.ParseUint(s[2:], 16, 8)
			if err != nil {
				return symbol{}, fmt.Errorf("invalid byte escape %q: %w", s, err)
			}
			if v < 0x80 {
				return symbol{r: rune(v)}, nil
			}
			return symbol{b: byte(v), raw: true}, nil
		}
		r, _ := utf8.DecodeRuneInString(s[1:])
		switch r {
		case 'n':
			return symbol{r: '\n'}, nil
		case 't':
			return symbol{r: '\t'}, nil
		case 'r':
			return symbol{r: '\r'}, nil
		default:
			return symbol{r: r}, nil
		}
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return symbol{}, fmt.Errorf("invalid literal %q", s)
	}
	return symbol{r: r}, nil
}

// maxRepeat caps counted quantifiers. Repeats expand into that many
// copies of the inner fragment, so an unbounded count would blow up the
// state graph long before it overflowed anything.
const maxRepeat = 1000

// bounds decodes a {m}, {m,} or {m,n} quantifier. max is -1 for an open
// upper bound. Counts above maxRepeat are rejected.
func (r *rangeExpr) bounds() (min, max int, err error) {
	min = digitsToInt(r.Min)
	switch {
	case !r.Comma:
		max = min
	case len(r.Max) == 0:
		max = -1
	default:
		max = digitsToInt(r.Max)
		if max < min {
			return 0, 0, fmt.Errorf("invalid repeat bounds {%d,%d}", min, max)
		}
	}
	if min > maxRepeat || max > maxRepeat {
		return 0, 0, fmt.Errorf("invalid repeat bounds: count exceeds %d", maxRepeat)
	}
	return min, max, nil
}

// digitsToInt saturates at maxRepeat+1 so oversized counts stay
// detectable instead of wrapping.
func digitsToInt(digits []string) int {
	n := 0
	for _, d := range digits {
		n = n*10 + int(d[0]-'0')
		if n > maxRepeat {
			return maxRepeat + 1
		}
	}
	return n
}
