package equation

import (
	"strconv"
	"strings"
	"unicode"
)

type token struct {
	text string
	kind tokenKind
	pos  int

	// Set by resolve. A token has at most one of v and op.
	v  *Var
	op *Op
	// major is the bracket depth of an operator, minor its priority.
	major, minor int
	// frag is the program computing a value token: a literal, a variable,
	// or an operation the reducer has already applied.
	frag []instr
	// gone marks a slot the reducer has consumed.
	gone bool
}

func (t *token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenNum is a number literal.
	tokenNum
	// tokenIdent is a variable or operator.
	tokenIdent
	// tokenCall is a function name immediately followed by an open bracket.
	tokenCall
	// tokenSep is a function argument separator.
	tokenSep
	// tokenOpen is (.
	tokenOpen
	// tokenClose is ).
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenCall:
		return "Call"
	case tokenSep:
		return "Sep"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// DefaultSymbols holds the characters besides Unicode symbols that may form
// operator and identifier names by default.
const DefaultSymbols = "*/%"

// lexMode is the kind of sequence the lexer is accumulating.
type lexMode int8

const (
	modeNone  lexMode = iota
	modeNum           // digits and decimal separators
	modeIdent         // letters, digits, symbols
	modeSign          // a lone -, which may become a literal or identifier
)

type lexer struct {
	src  string
	syms string
	sep  rune

	buf   strings.Builder
	mode  lexMode
	start int
	toks  []token
	// symbolic is whether the identifier being scanned is made of symbols
	// rather than letters and digits.
	symbolic bool
	// point is whether the number being scanned has its decimal separator.
	point bool
}

// lex splits src into tokens. syms are the characters other than Unicode
// symbols that can appear in operators and names; sep is the decimal
// separator.
func lex(src, syms string, sep rune) ([]token, error) {
	l := lexer{src: src, syms: syms, sep: sep}
	i := 0
	for _, r := range src {
		if err := l.step(i, r); err != nil {
			return nil, err
		}
		i++
	}
	l.flush(tokenIdent)
	return l.toks, nil
}

func (l *lexer) step(i int, r rune) error {
	switch {
	case unicode.IsSpace(r):
		l.flush(tokenIdent)
	case r == '-':
		switch l.mode {
		case modeNone:
			l.begin(i, modeSign, r)
		case modeSign:
			return l.error(i, "minus follows a minus")
		default:
			return l.error(i, "minus must be separated by white space")
		}
	case r == l.sep && l.mode == modeNum && !l.point:
		l.buf.WriteRune(r)
		l.point = true
	case r == ',':
		if l.mode == modeSign {
			return l.error(i, "argument separator follows a minus")
		}
		l.flush(tokenIdent)
		l.emit(",", tokenSep, i)
	case r == l.sep, '0' <= r && r <= '9':
		switch l.mode {
		case modeNone:
			l.begin(i, modeNum, r)
			l.point = r == l.sep
		case modeSign:
			l.mode = modeNum
			l.buf.WriteRune(r)
			l.point = r == l.sep
		case modeIdent:
			if r == l.sep {
				return l.error(i, "decimal separator follows a name")
			}
			if l.symbolic {
				return l.error(i, "digit follows a symbol")
			}
			l.buf.WriteRune(r)
		default:
			l.buf.WriteRune(r)
		}
	case unicode.IsLetter(r), r == '_':
		switch l.mode {
		case modeNone:
			l.begin(i, modeIdent, r)
		case modeNum:
			return l.error(i, "letter follows a digit; separate names and numbers with white space")
		case modeIdent:
			if l.symbolic {
				return l.error(i, "letter follows a symbol; separate names and operators with white space")
			}
			l.buf.WriteRune(r)
		default:
			l.mode = modeIdent
			l.buf.WriteRune(r)
		}
	case r == '(':
		switch l.mode {
		case modeNum:
			return l.error(i, "opening bracket follows a digit")
		case modeIdent:
			l.flush(tokenCall)
		default:
			l.flush(tokenIdent)
		}
		l.emit("(", tokenOpen, i)
	case r == ')':
		l.flush(tokenIdent)
		l.emit(")", tokenClose, i)
	case strings.ContainsRune(l.syms, r), unicode.IsSymbol(r):
		switch l.mode {
		case modeNone:
			l.begin(i, modeIdent, r)
			l.symbolic = true
		case modeNum:
			return l.error(i, "symbol follows a digit; separate operators and numbers with white space")
		case modeSign:
			return l.error(i, "symbol follows a minus")
		default:
			if !l.symbolic {
				return l.error(i, "symbol follows a letter; separate names and operators with white space")
			}
			l.buf.WriteRune(r)
		}
	default:
		return l.error(i, "unexpected character")
	}
	return nil
}

func (l *lexer) begin(i int, mode lexMode, r rune) {
	l.buf.Reset()
	l.buf.WriteRune(r)
	l.start = i
	l.mode = mode
	l.symbolic = false
	l.point = false
}

func (l *lexer) emit(text string, kind tokenKind, pos int) {
	l.toks = append(l.toks, token{text: text, kind: kind, pos: pos})
}

// flush emits the pending sequence, if any. Identifiers are emitted with the
// given kind. A leading minus on a name becomes its own token.
func (l *lexer) flush(kind tokenKind) {
	mode := l.mode
	l.mode = modeNone
	text := l.buf.String()
	l.buf.Reset()
	switch mode {
	case modeNone:
	case modeNum:
		l.emit(text, tokenNum, l.start)
	case modeSign:
		l.emit(text, tokenIdent, l.start)
	case modeIdent:
		if len(text) > 1 && text[0] == '-' {
			l.emit("-", tokenIdent, l.start)
			l.emit(text[1:], kind, l.start+1)
			return
		}
		l.emit(text, kind, l.start)
	}
}

func (l *lexer) error(i int, msg string) error {
	return &LexError{Col: i, Src: l.src, Msg: msg}
}
