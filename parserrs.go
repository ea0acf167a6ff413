package equation

import (
	"strconv"
	"strings"
)

// LexError indicates a character that cannot appear where it does. It
// implements InputError.
type LexError struct {
	// Col is the 0-based rune offset of the offending character.
	Col int
	// Src is the complete input.
	Src string
	// Msg describes the problem.
	Msg string
}

func (err *LexError) Error() string {
	return errpos(err.Src, err.Col, err.Msg)
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Source() string {
	return err.Src
}

// StructureError indicates tokens that are individually valid but do not form
// an expression, e.g. unbalanced brackets, an operator with a missing operand,
// or a trailing comma in an argument list. It implements InputError.
type StructureError struct {
	// Col is the position of the token where the problem was detected.
	Col int
	// Src is the complete input.
	Src string
	// Msg describes the problem.
	Msg string
}

func (err *StructureError) Error() string {
	return errpos(err.Src, err.Col, err.Msg)
}

func (err *StructureError) Pos() int {
	return err.Col
}

func (err *StructureError) Source() string {
	return err.Src
}

// ArityError indicates a function call with the wrong number of arguments. It
// implements InputError.
type ArityError struct {
	// Col is the position of the function name.
	Col int
	// Src is the complete input.
	Src string
	// Func is the name of the function as written.
	Func string
	// Want is the number of arguments the function takes.
	Want int
	// Got is the number of arguments in the call.
	Got int
}

func (err *ArityError) Error() string {
	msg := "cannot call " + err.Func + " with " + strconv.Itoa(err.Got) + " arguments, want " + strconv.Itoa(err.Want)
	return errpos(err.Src, err.Col, msg)
}

func (err *ArityError) Pos() int {
	return err.Col
}

func (err *ArityError) Source() string {
	return err.Src
}

// UnknownSymbolError indicates a name in function call position that is not a
// known function. It implements InputError.
type UnknownSymbolError struct {
	// Col is the position of the name.
	Col int
	// Src is the complete input.
	Src string
	// Name is the unknown function name.
	Name string
}

func (err *UnknownSymbolError) Error() string {
	return errpos(err.Src, err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *UnknownSymbolError) Pos() int {
	return err.Col
}

func (err *UnknownSymbolError) Source() string {
	return err.Src
}

// NameError is an error from evaluating a variable that has no value and no
// corresponding positional argument.
type NameError struct {
	// Name is the variable's name.
	Name string
	// Index is the variable's index, i.e. the positional argument that
	// would have supplied its value.
	Index int
	// Args is the number of positional arguments given.
	Args int
}

func (err *NameError) Error() string {
	return "undefined variable " + strconv.Quote(err.Name) + ": no value and no argument " +
		strconv.Itoa(err.Index) + " (" + strconv.Itoa(err.Args) + " given)"
}

// InternalError indicates a program that cannot be executed, e.g. one whose
// operations pop more values than it pushes. Programs produced by Parse and
// ParseRPN never cause it; it means a bug or a bad hand-built program.
type InternalError struct {
	Msg string
}

func (err *InternalError) Error() string {
	return "equation: corrupted program: " + err.Msg
}

// errpos formats an error message with its position and a copy of the input
// marking the character at that position.
func errpos(src string, col int, msg string) string {
	return strconv.Itoa(col) + ": " + msg + " (" + Mark(src, col, ">>", "<<") + ")"
}

// Mark renders src with the rune at offset col surrounded by left and right.
// If col is outside src, the markers enclose nothing at the end of src.
func Mark(src string, col int, left, right string) string {
	var b strings.Builder
	i := 0
	for _, r := range src {
		if i == col {
			b.WriteString(left)
			b.WriteRune(r)
			b.WriteString(right)
		} else {
			b.WriteRune(r)
		}
		i++
	}
	if col >= i {
		b.WriteString(left)
		b.WriteString(right)
	}
	return b.String()
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 0-based rune offset of the character or token that
	// caused the error.
	Pos() int
	// Source returns the complete input that was being parsed.
	Source() string
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*StructureError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*UnknownSymbolError)(nil)
)
