// Package equation compiles arithmetic expressions to postfix programs and
// evaluates them.
//
// Expressions are written in infix, like "(5 + 6) * Sin(Min2(x - 3, 10))", or
// in reverse Polish notation, like "5 6 + x *". Names, numbers, and operators
// are separated by white space. A name directly followed by a bracket is a
// function call; a function overloaded by arity is named with its arity as a
// suffix, as in Min2 or Log1. Any other name that is not an operator is a
// variable.
//
// Infix expressions are converted by repeatedly applying the most binding
// remaining operation, where operations inside more brackets bind more than
// those outside and, among operations in the same brackets, functions bind
// most, then negation, then multiplication and division, then addition and
// subtraction. Operations of equal priority apply left to right.
//
// A parsed Program can be evaluated any number of times. Each variable gets an
// index in the order it first appears; a variable without a value of its own
// takes the positional argument to Eval at its index, so "x y +" evaluated
// with arguments 4 and 3 is 7.
package equation
