package equation

// Parse parses an infix expression into a program. The given options are
// applied in order.
//
// Names, numbers, and operators must be separated by white space, except that
// brackets and commas need no spaces around them and a minus directly before a
// number or name negates it: "2 * -x + (y - 1) / Max(x, -3)".
//
// If parsing fails, any variables it allocated are removed from the
// directory again.
func Parse(src string, opts ...ParseOption) (*Program, error) {
	p := newParsectx(src, opts)
	toks, err := lex(src, p.syms, p.sep)
	if err != nil {
		return nil, err
	}
	n := p.vars.Len()
	if err := resolve(toks, &p); err != nil {
		p.vars.truncate(n)
		return nil, err
	}
	code, err := reduce(src, toks)
	if err != nil {
		p.vars.truncate(n)
		return nil, err
	}
	return newProgram(code), nil
}
