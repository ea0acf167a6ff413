package equation

import (
	"errors"
	"testing"
)

type lexed struct {
	text string
	kind tokenKind
	pos  int
}

func TestLex(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		sep    rune
		tokens []lexed
	}{
		// spaces
		{"empty", "", '.', nil},
		{"spaces", " \t \r\n ", '.', nil},
		// numbers
		{"zero", "0", '.', []lexed{{"0", tokenNum, 0}}},
		{"digits", "9876543210", '.', []lexed{{"9876543210", tokenNum, 0}}},
		{"two", "1 0", '.', []lexed{{"1", tokenNum, 0}, {"0", tokenNum, 2}}},
		{"real", "12.5", '.', []lexed{{"12.5", tokenNum, 0}}},
		{"leading-sep", ".5", '.', []lexed{{".5", tokenNum, 0}}},
		{"negative", "-1", '.', []lexed{{"-1", tokenNum, 0}}},
		{"comma-sep", "1,5 2", ',', []lexed{{"1,5", tokenNum, 0}, {"2", tokenNum, 4}}},
		// identifiers
		{"name", "x", '.', []lexed{{"x", tokenIdent, 0}}},
		{"name-digits", "ab_1", '.', []lexed{{"ab_1", tokenIdent, 0}}},
		{"unicode", "π", '.', []lexed{{"π", tokenIdent, 0}}},
		{"negated", "-x", '.', []lexed{{"-", tokenIdent, 0}, {"x", tokenIdent, 1}}},
		{"minus-name", "- x", '.', []lexed{{"-", tokenIdent, 0}, {"x", tokenIdent, 2}}},
		// operators
		{"sub", "x - y", '.', []lexed{{"x", tokenIdent, 0}, {"-", tokenIdent, 2}, {"y", tokenIdent, 4}}},
		{"mul", "2 * 3", '.', []lexed{{"2", tokenNum, 0}, {"*", tokenIdent, 2}, {"3", tokenNum, 4}}},
		{"symbols", "a <= b", '.', []lexed{{"a", tokenIdent, 0}, {"<=", tokenIdent, 2}, {"b", tokenIdent, 5}}},
		// brackets and calls
		{"brackets", "(1)", '.', []lexed{{"(", tokenOpen, 0}, {"1", tokenNum, 1}, {")", tokenClose, 2}}},
		{"empty-brackets", "()", '.', []lexed{{"(", tokenOpen, 0}, {")", tokenClose, 1}}},
		{"call", "Min2(1, x)", '.', []lexed{
			{"Min2", tokenCall, 0}, {"(", tokenOpen, 4}, {"1", tokenNum, 5}, {",", tokenSep, 6},
			{"x", tokenIdent, 8}, {")", tokenClose, 9},
		}},
		{"call-comma-sep", "Min(1,5, 2)", ',', []lexed{
			{"Min", tokenCall, 0}, {"(", tokenOpen, 3}, {"1,5", tokenNum, 4}, {",", tokenSep, 7},
			{"2", tokenNum, 9}, {")", tokenClose, 10},
		}},
		{"negated-call", "-Sin(x)", '.', []lexed{
			{"-", tokenIdent, 0}, {"Sin", tokenCall, 1}, {"(", tokenOpen, 4}, {"x", tokenIdent, 5}, {")", tokenClose, 6},
		}},
		{"negated-brackets", "-(x)", '.', []lexed{
			{"-", tokenIdent, 0}, {"(", tokenOpen, 1}, {"x", tokenIdent, 2}, {")", tokenClose, 3},
		}},
		{"space-call", "f (x)", '.', []lexed{
			{"f", tokenIdent, 0}, {"(", tokenOpen, 2}, {"x", tokenIdent, 3}, {")", tokenClose, 4},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(c.src, DefaultSymbols, c.sep)
			if err != nil {
				t.Fatalf("scanning %q: unexpected error %v", c.src, err)
			}
			if len(toks) != len(c.tokens) {
				t.Fatalf("scanning %q: want %d tokens, got %d: %v", c.src, len(c.tokens), len(toks), toks)
			}
			for i, want := range c.tokens {
				got := lexed{toks[i].text, toks[i].kind, toks[i].pos}
				if got != want {
					t.Errorf("scanning %q: token %d: want %v, got %v", c.src, i, want, got)
				}
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		col  int
	}{
		{"letter-after-digit", "5a", 1},
		{"minus-in-number", "1-", 1},
		{"minus-in-name", "x-", 1},
		{"double-minus", "--1", 1},
		{"minus-comma", "-,", 1},
		{"bracket-after-digit", "1(", 1},
		{"symbol-after-digit", "2+", 1},
		{"symbol-after-letter", "x+", 1},
		{"letter-after-symbol", "+x", 1},
		{"digit-after-symbol", "+1", 1},
		{"symbol-after-minus", "-+", 1},
		{"sep-in-name", "x.5", 1},
		{"unexpected", "x # y", 2},
		{"semicolon", "a;b", 1},
		{"late", "Min2(1, 2) $ 3 & 4", 15},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(c.src, DefaultSymbols, '.')
			if err == nil {
				t.Fatalf("scanning %q gave no error and tokens %v", c.src, toks)
			}
			var le *LexError
			if !errors.As(err, &le) {
				t.Fatalf("scanning %q gave %#v, not *LexError", c.src, err)
			}
			if le.Col != c.col {
				t.Errorf("scanning %q: want error at %d, got %d: %v", c.src, c.col, le.Col, err)
			}
			if le.Src != c.src {
				t.Errorf("scanning %q: error has source %q", c.src, le.Src)
			}
		})
	}
}

func TestLexSymbols(t *testing.T) {
	// With no extra symbols, * is no longer part of any operator.
	if _, err := lex("2 * 3", "", '.'); err == nil {
		t.Error("no error lexing * without extra symbols")
	}
	toks, err := lex("2 # 3", "#", '.')
	if err != nil {
		t.Fatalf("lexing # as extra symbol: %v", err)
	}
	if len(toks) != 3 || toks[1].text != "#" || toks[1].kind != tokenIdent {
		t.Errorf("wrong tokens for # as extra symbol: %v", toks)
	}
}
