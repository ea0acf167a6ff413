package equation

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseRPN parses an expression in reverse Polish notation, e.g. "x y + 2 *".
// Every number, name, and operator must be separated from the next by white
// space. Names that the registry resolves are operations; all others are
// variables. The options are the same as for Parse, except that there are no
// prefix operators.
//
// If parsing fails, any variables it allocated are removed from the
// directory again.
func ParseRPN(src string, opts ...ParseOption) (*Program, error) {
	p := newParsectx(src, opts)
	n := p.vars.Len()
	code, err := parseRPN(&p)
	if err != nil {
		p.vars.truncate(n)
		return nil, err
	}
	return newProgram(code), nil
}

func parseRPN(p *parsectx) ([]instr, error) {
	var (
		code  []instr
		buf   strings.Builder
		mode  lexMode
		sym   bool
		start int
		// depth is the stack depth the program has reached.
		depth int
	)
	lexerr := func(i int, msg string) error {
		return &LexError{Col: i, Src: p.src, Msg: msg}
	}
	flush := func() error {
		text := buf.String()
		buf.Reset()
		m := mode
		mode = modeNone
		switch m {
		case modeNone:
			return nil
		case modeNum:
			x, err := p.number(text)
			if err != nil {
				return lexerr(start, "invalid number "+strconv.Quote(text))
			}
			code = append(code, instr{kind: instrNum, num: x})
			depth++
			return nil
		}
		op, ok := p.resolve(text)
		if !ok {
			code = append(code, instr{kind: instrVar, v: p.vars.Var(text)})
			depth++
			return nil
		}
		if depth < op.Arity {
			return &StructureError{Col: start, Src: p.src, Msg: "not enough operands for " + text + ": want " + strconv.Itoa(op.Arity) + ", have " + strconv.Itoa(depth)}
		}
		code = append(code, instr{kind: instrOp, op: op})
		depth += 1 - op.Arity
		return nil
	}
	begin := func(i int, m lexMode, r rune) {
		buf.WriteRune(r)
		start, mode, sym = i, m, false
	}

	i := 0
	for _, r := range p.src {
		switch {
		case unicode.IsSpace(r):
			if err := flush(); err != nil {
				return nil, err
			}
		case r == '-':
			if mode != modeNone {
				return nil, lexerr(i, "minus must be separated by white space")
			}
			begin(i, modeSign, r)
		case r == p.sep, '0' <= r && r <= '9':
			switch mode {
			case modeNone:
				begin(i, modeNum, r)
			case modeSign:
				mode = modeNum
				buf.WriteRune(r)
			case modeIdent:
				if sym {
					return nil, lexerr(i, "digit follows a symbol; separate operators and numbers with white space")
				}
				if r == p.sep {
					return nil, lexerr(i, "decimal separator follows a name")
				}
				buf.WriteRune(r)
			default:
				buf.WriteRune(r)
			}
		case unicode.IsLetter(r), r == '_':
			switch mode {
			case modeNone:
				begin(i, modeIdent, r)
			case modeNum:
				return nil, lexerr(i, "letter follows a digit; separate names and numbers with white space")
			case modeSign:
				return nil, lexerr(i, "letter follows a minus")
			default:
				if sym {
					return nil, lexerr(i, "letter follows a symbol; separate names and operators with white space")
				}
				buf.WriteRune(r)
			}
		case strings.ContainsRune(p.syms, r), unicode.IsSymbol(r):
			switch mode {
			case modeNone:
				begin(i, modeIdent, r)
				sym = true
			case modeNum:
				return nil, lexerr(i, "symbol follows a digit; separate operators and numbers with white space")
			case modeSign:
				return nil, lexerr(i, "symbol follows a minus")
			default:
				if !sym {
					return nil, lexerr(i, "symbol follows a letter; separate names and operators with white space")
				}
				buf.WriteRune(r)
			}
		default:
			return nil, lexerr(i, "unexpected character")
		}
		i++
	}
	if err := flush(); err != nil {
		return nil, err
	}
	switch depth {
	case 0:
		return nil, &StructureError{Col: i, Src: p.src, Msg: "no expression"}
	case 1:
		return code, nil
	default:
		return nil, &StructureError{Col: i, Src: p.src, Msg: strconv.Itoa(depth) + " values left without an operator"}
	}
}
