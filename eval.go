package equation

import (
	"strconv"

	"github.com/edwingeng/deque"
)

// cell is a value on the evaluation stack. Variables stay unresolved until an
// operation consumes them.
type cell struct {
	num float64
	v   *Var
}

// value resolves c to a number, taking variables without values from args.
func (c cell) value(args []float64) (float64, error) {
	if c.v == nil {
		return c.num, nil
	}
	if x, ok := c.v.Value(); ok {
		return x, nil
	}
	if c.v.index < len(args) {
		return args[c.v.index], nil
	}
	return 0, &NameError{Name: c.v.name, Index: c.v.index, Args: len(args)}
}

// Eval executes the program and returns its result. Variables that have no
// value are taken from args by their indices.
//
// Eval does not modify the program, so it may be called concurrently as long
// as no variable the program uses is Set or Cleared meanwhile.
func (p *Program) Eval(args ...float64) (float64, error) {
	stack := deque.NewDeque()
	var operands []float64
	for k, in := range p.code {
		switch in.kind {
		case instrNum:
			stack.PushBack(cell{num: in.num})
		case instrVar:
			stack.PushBack(cell{v: in.v})
		case instrOp:
			n := in.op.Arity
			if stack.Len() < n {
				return 0, &InternalError{Msg: "stack underflow at instruction " + strconv.Itoa(k) + " (" + in.op.Name + " needs " + strconv.Itoa(n) + ", have " + strconv.Itoa(stack.Len()) + ")"}
			}
			if cap(operands) < n {
				operands = make([]float64, n)
			}
			operands = operands[:n]
			for i := n - 1; i >= 0; i-- {
				x, err := stack.PopBack().(cell).value(args)
				if err != nil {
					return 0, err
				}
				operands[i] = x
			}
			stack.PushBack(cell{num: in.op.Fn(operands)})
		default:
			return 0, &InternalError{Msg: "invalid instruction " + in.String() + " at " + strconv.Itoa(k)}
		}
	}
	if stack.Len() != 1 {
		return 0, &InternalError{Msg: "inconsistent stack: " + strconv.Itoa(stack.Len()) + " values at end"}
	}
	return stack.PopBack().(cell).value(args)
}

// EvalString is a shortcut to parse an infix expression with the default
// options and evaluate it with the given positional arguments.
func EvalString(src string, args ...float64) (float64, error) {
	p, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return p.Eval(args...)
}
