package equation

import (
	"strconv"
	"strings"
)

// resolve annotates tokens with their numbers, variables, and operations, and
// checks that brackets balance.
func resolve(toks []token, p *parsectx) error {
	var open []int
	for i := range toks {
		t := &toks[i]
		switch t.kind {
		case tokenOpen:
			open = append(open, t.pos)
		case tokenClose:
			if len(open) == 0 {
				return &StructureError{Col: t.pos, Src: p.src, Msg: "closing bracket with no opening bracket"}
			}
			open = open[:len(open)-1]
		case tokenSep:
			if len(open) == 0 {
				return &StructureError{Col: t.pos, Src: p.src, Msg: "argument separator outside brackets"}
			}
		case tokenNum:
			x, err := p.number(t.text)
			if err != nil {
				return &LexError{Col: t.pos, Src: p.src, Msg: "invalid number " + strconv.Quote(t.text)}
			}
			t.frag = []instr{{kind: instrNum, num: x}}
		case tokenIdent:
			if prefix(toks, i) {
				if op, ok := p.resolveUnary(t.text); ok {
					t.op, t.major, t.minor = op, len(open), op.Prec
					continue
				}
			}
			op, ok := p.resolve(t.text)
			if !ok {
				t.v = p.vars.Var(t.text)
				t.frag = []instr{{kind: instrVar, v: t.v}}
				continue
			}
			if op.Kind == OpFunc {
				return &StructureError{Col: t.pos, Src: p.src, Msg: "function " + t.text + " must be called with brackets"}
			}
			t.op, t.major, t.minor = op, len(open), op.Prec
		case tokenCall:
			op, ok := p.resolve(t.text)
			if !ok || op.Kind != OpFunc {
				return &UnknownSymbolError{Col: t.pos, Src: p.src, Name: t.text}
			}
			t.op, t.major, t.minor = op, len(open), op.Prec
		default:
			panic("equation: unknown token: " + t.String())
		}
	}
	if len(open) != 0 {
		return &StructureError{Col: open[len(open)-1], Src: p.src, Msg: "opening bracket with no closing bracket"}
	}
	return nil
}

// prefix returns whether the token at i is in prefix operator position, i.e.
// it cannot be preceded by an operand.
func prefix(toks []token, i int) bool {
	if i == 0 {
		return true
	}
	switch t := &toks[i-1]; t.kind {
	case tokenOpen, tokenSep:
		return true
	case tokenIdent:
		return t.op != nil
	default:
		return false
	}
}

// number parses a literal written with the configured decimal separator.
func (p *parsectx) number(s string) (float64, error) {
	if p.sep != '.' {
		if strings.ContainsRune(s, '.') {
			return 0, strconv.ErrSyntax
		}
		s = strings.ReplaceAll(s, string(p.sep), ".")
	}
	return strconv.ParseFloat(s, 64)
}
