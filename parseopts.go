package equation

import (
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	sepopt  rune
	symopt  string
	regopt  struct{ r Registry }
	funcopt struct{ op *Op }
	diropt  struct{ d *Directory }
)

// parsectx holds general data for parsing.
type parsectx struct {
	// src is the input being parsed.
	src string
	// sep is the decimal separator.
	sep rune
	// syms holds the non-symbol characters allowed in operator names.
	syms string
	// reg resolves operations. extra, if not nil, takes precedence.
	reg   Registry
	extra *Ops
	// vars allocates variables.
	vars *Directory
}

func newParsectx(src string, opts []ParseOption) parsectx {
	p := parsectx{
		src:  src,
		sep:  '.',
		syms: DefaultSymbols,
		reg:  globalops,
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	if p.vars == nil {
		p.vars = NewDirectory()
	}
	return p
}

func (p *parsectx) resolve(name string) (*Op, bool) {
	if p.extra != nil {
		if op, ok := p.extra.Resolve(name); ok {
			return op, true
		}
	}
	return p.reg.Resolve(name)
}

func (p *parsectx) resolveUnary(name string) (*Op, bool) {
	if p.extra != nil {
		if op, ok := p.extra.ResolveUnary(name); ok {
			return op, true
		}
	}
	return p.reg.ResolveUnary(name)
}

// DecimalSeparator sets the character that separates the integer and fraction
// parts of numbers. The default is '.'. A number holds at most one
// separator. If the separator is ',', then the first comma directly after the
// digits of a number continues the number, so a comma that separates function
// arguments must follow white space or a number that already has a fraction:
// "Max(1 , 2,5)".
//
// DecimalSeparator panics if sep is a letter, digit, white space, bracket, or
// minus.
func DecimalSeparator(sep rune) ParseOption {
	switch {
	case unicode.IsLetter(sep), unicode.IsDigit(sep), unicode.IsSpace(sep),
		sep == '(', sep == ')', sep == '-', sep == '_':
		panic("equation: cannot use " + strconv.QuoteRune(sep) + " as decimal separator")
	}
	return sepopt(sep)
}

func (o sepopt) parseOption(p parsectx) parsectx {
	p.sep = rune(o)
	return p
}

// Symbols sets the characters, in addition to Unicode symbols, that may form
// operator names. The default is DefaultSymbols.
func Symbols(chars string) ParseOption {
	return symopt(chars)
}

func (o symopt) parseOption(p parsectx) parsectx {
	p.syms = string(o)
	return p
}

// WithRegistry sets the operations available to expressions. The default is
// the table returned by DefaultOps.
func WithRegistry(r Registry) ParseOption {
	return regopt{r}
}

func (o regopt) parseOption(p parsectx) parsectx {
	p.reg = o.r
	return p
}

// ParseFunc adds an operation for parsing on top of the registry. Operations
// added this way take precedence over the registry's.
func ParseFunc(op *Op) ParseOption {
	return funcopt{op}
}

func (o funcopt) parseOption(p parsectx) parsectx {
	if p.extra == nil {
		p.extra = NewOps()
	}
	p.extra.Add(o.op)
	return p
}

// Vars sets the directory that allocates variables, so that several programs
// can share variables. By default, each parse uses a new directory.
func Vars(d *Directory) ParseOption {
	return diropt{d}
}

func (o diropt) parseOption(p parsectx) parsectx {
	p.vars = o.d
	return p
}
