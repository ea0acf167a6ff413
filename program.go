package equation

import (
	"strconv"
	"strings"
)

// instr is one instruction of a program.
type instr struct {
	kind instrKind

	num float64
	v   *Var
	op  *Op
}

type instrKind int8

const (
	instrNone instrKind = iota

	instrNum // push num
	instrVar // push v, resolved when consumed
	instrOp  // pop op.Arity, push op.Fn of them
)

func (in instr) String() string {
	switch in.kind {
	case instrNum:
		return strconv.FormatFloat(in.num, 'g', -1, 64)
	case instrVar:
		return in.v.name
	case instrOp:
		if in.op.Kind == OpUnary {
			return "u" + in.op.Name
		}
		return in.op.Name
	default:
		return "$" + strconv.Itoa(int(in.kind)) + "$"
	}
}

// Program is a parsed expression in postfix form. It can be evaluated any
// number of times; it holds no state between evaluations other than through
// the values of its variables.
//
// The zero value is an empty program that can be built up with PushNum,
// PushVar, and PushOp.
type Program struct {
	code []instr
	// vars is the set of variables the program uses, in first-use order.
	vars []*Var
}

func newProgram(code []instr) *Program {
	p := Program{code: code}
	for _, in := range code {
		if in.kind == instrVar {
			p.addvar(in.v)
		}
	}
	return &p
}

func (p *Program) addvar(v *Var) {
	for _, u := range p.vars {
		if u == v {
			return
		}
	}
	p.vars = append(p.vars, v)
}

// PushNum appends an instruction that pushes a number. Returns p for chaining.
func (p *Program) PushNum(x float64) *Program {
	p.code = append(p.code, instr{kind: instrNum, num: x})
	return p
}

// PushVar appends an instruction that pushes a variable. Returns p for
// chaining.
func (p *Program) PushVar(v *Var) *Program {
	p.addvar(v)
	p.code = append(p.code, instr{kind: instrVar, v: v})
	return p
}

// PushOp appends an instruction that applies an operation to the values on
// top of the stack. Returns p for chaining.
func (p *Program) PushOp(op *Op) *Program {
	p.code = append(p.code, instr{kind: instrOp, op: op})
	return p
}

// Vars returns the variables used by the program in the order they first
// appear in it.
func (p *Program) Vars() []*Var {
	return append([]*Var(nil), p.vars...)
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.code)
}

// String formats the program in reverse Polish notation. The result uses . as
// the decimal separator, and prefix operators are written with a u before
// their names, so negation is u-.
func (p *Program) String() string {
	var b strings.Builder
	for i, in := range p.code {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(in.String())
	}
	return b.String()
}
