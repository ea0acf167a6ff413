package equation

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// OpKind is the variant of an operation.
type OpKind int8

const (
	opNone OpKind = iota
	// OpBinary is an infix operator with two operands, e.g. +.
	OpBinary
	// OpUnary is a prefix operator with one operand, e.g. negation.
	OpUnary
	// OpFunc is a function called by name with a bracketed argument list.
	OpFunc
)

func (k OpKind) String() string {
	switch k {
	case OpBinary:
		return "binary"
	case OpUnary:
		return "unary"
	case OpFunc:
		return "function"
	default:
		return "OpKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Priorities of the default operations. Higher values bind more tightly.
const (
	PrecAdd   = 0
	PrecMul   = 1
	PrecUnary = 2
	PrecCall  = 3
)

// Op is an operation that a program can execute: an operator or a function.
type Op struct {
	// Name is the symbol or function name the operation is registered under.
	Name string
	// Kind is the operation's variant.
	Kind OpKind
	// Arity is the number of operands. Binary operators always have 2 and
	// unary operators 1.
	Arity int
	// Prec is the priority of the operation among others in the same
	// brackets.
	Prec int
	// Fn computes the result. It receives exactly Arity operands in source
	// order and must not retain the slice.
	Fn func(args []float64) float64
}

func (op *Op) String() string {
	return op.Name
}

// Binary creates an infix operator.
func Binary(name string, prec int, f func(a, b float64) float64) *Op {
	return &Op{
		Name:  name,
		Kind:  OpBinary,
		Arity: 2,
		Prec:  prec,
		Fn:    func(args []float64) float64 { return f(args[0], args[1]) },
	}
}

// Unary creates a prefix operator.
func Unary(name string, prec int, f func(x float64) float64) *Op {
	return &Op{
		Name:  name,
		Kind:  OpUnary,
		Arity: 1,
		Prec:  prec,
		Fn:    func(args []float64) float64 { return f(args[0]) },
	}
}

// Func creates a function of any number of arguments.
func Func(name string, arity int, f func(args []float64) float64) *Op {
	if arity < 0 {
		panic("equation: negative arity for " + name)
	}
	return &Op{Name: name, Kind: OpFunc, Arity: arity, Prec: PrecCall, Fn: f}
}

// Niladic creates a function of no arguments, generally a constant.
func Niladic(name string, f func() float64) *Op {
	return Func(name, 0, func([]float64) float64 { return f() })
}

// Monadic creates a function of one argument.
func Monadic(name string, f func(x float64) float64) *Op {
	return Func(name, 1, func(args []float64) float64 { return f(args[0]) })
}

// Dyadic creates a function of two arguments.
func Dyadic(name string, f func(x, y float64) float64) *Op {
	return Func(name, 2, func(args []float64) float64 { return f(args[0], args[1]) })
}

// Registry resolves operator symbols and function names for the parsers.
type Registry interface {
	// Resolve finds the binary operator or function named by name. A
	// function overloaded by arity is resolved by a name ending in a digit
	// giving the arity, e.g. Log2 for the two-argument Log.
	Resolve(name string) (*Op, bool)
	// ResolveUnary finds the prefix operator named by name.
	ResolveUnary(name string) (*Op, bool)
}

// Ops is a table of operations. It implements Registry. The zero value is not
// usable; use NewOps or DefaultOps.
type Ops struct {
	binary map[string]*Op
	unary  map[string]*Op
	// funcs holds overloads by name, one per arity.
	funcs map[string][]*Op
}

// NewOps creates an empty table.
func NewOps() *Ops {
	return &Ops{
		binary: make(map[string]*Op),
		unary:  make(map[string]*Op),
		funcs:  make(map[string][]*Op),
	}
}

// DefaultOps returns a copy of the default table, which holds the arithmetic
// operators and common functions from package math. The copy may be modified
// freely.
func DefaultOps() *Ops {
	return globalops.Clone()
}

// Clone copies the table.
func (o *Ops) Clone() *Ops {
	n := NewOps()
	for k, v := range o.binary {
		n.binary[k] = v
	}
	for k, v := range o.unary {
		n.unary[k] = v
	}
	for k, v := range o.funcs {
		n.funcs[k] = append([]*Op(nil), v...)
	}
	return n
}

// Add adds op to the table, replacing any operation of the same name and
// variant. Functions of the same name but different arities are kept as
// overloads. Returns o for chaining.
func (o *Ops) Add(op *Op) *Ops {
	switch op.Kind {
	case OpBinary:
		o.binary[op.Name] = op
	case OpUnary:
		o.unary[op.Name] = op
	case OpFunc:
		v := o.funcs[op.Name]
		for i, f := range v {
			if f.Arity == op.Arity {
				v[i] = op
				return o
			}
		}
		o.funcs[op.Name] = append(v, op)
	default:
		panic("equation: cannot add " + op.Kind.String() + " operation " + strconv.Quote(op.Name))
	}
	return o
}

// Known returns whether name resolves to any operation.
func (o *Ops) Known(name string) bool {
	if _, ok := o.Resolve(name); ok {
		return true
	}
	_, ok := o.ResolveUnary(name)
	return ok
}

func (o *Ops) Resolve(name string) (*Op, bool) {
	if op := o.binary[name]; op != nil {
		return op, true
	}
	if v := o.funcs[name]; len(v) == 1 {
		return v[0], true
	}
	// Overloads need an arity suffix.
	n := len(name)
	if n < 2 || name[n-1] < '0' || name[n-1] > '9' {
		return nil, false
	}
	arity := int(name[n-1] - '0')
	for _, op := range o.funcs[name[:n-1]] {
		if op.Arity == arity {
			return op, true
		}
	}
	return nil, false
}

func (o *Ops) ResolveUnary(name string) (*Op, bool) {
	op := o.unary[name]
	return op, op != nil
}

// bigprec is the precision of the big.Float computations backing some
// default functions. It exceeds float64's so that results round once.
const bigprec = 64

// precise1 wraps a big.Float function of one argument. Arguments for which ok
// reports false go to fallback instead.
func precise1(f func(z, x *big.Float) *big.Float, ok func(x float64) bool, fallback func(float64) float64) func(float64) float64 {
	return func(x float64) float64 {
		if !ok(x) {
			return fallback(x)
		}
		in := new(big.Float).SetPrec(bigprec).SetFloat64(x)
		out := new(big.Float).SetPrec(bigprec)
		r, _ := f(out, in).Float64()
		return r
	}
}

func finite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// bigpow is x^y computed by bigfloat for positive finite bases.
func bigpow(x, y float64) float64 {
	if !finite(x) || !finite(y) || x <= 0 || math.Abs(y) > 1<<20 {
		return math.Pow(x, y)
	}
	z := new(big.Float).SetPrec(bigprec)
	bx := new(big.Float).SetPrec(bigprec).SetFloat64(x)
	by := new(big.Float).SetPrec(bigprec).SetFloat64(y)
	r, _ := bigfloat.Pow(z, bx, by).Float64()
	return r
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

// globalops is the default table. It is never modified after init.
var globalops = func() *Ops {
	o := NewOps()
	o.Add(Binary("+", PrecAdd, func(a, b float64) float64 { return a + b }))
	o.Add(Binary("-", PrecAdd, func(a, b float64) float64 { return a - b }))
	o.Add(Binary("*", PrecMul, func(a, b float64) float64 { return a * b }))
	o.Add(Binary("/", PrecMul, func(a, b float64) float64 { return a / b }))
	o.Add(Binary("%", PrecMul, math.Mod))
	o.Add(Unary("-", PrecUnary, func(x float64) float64 { return -x }))

	o.Add(Monadic("Abs", math.Abs))
	o.Add(Monadic("Acos", math.Acos))
	o.Add(Monadic("Asin", math.Asin))
	o.Add(Monadic("Atan", math.Atan))
	o.Add(Dyadic("Atan2", math.Atan2))
	o.Add(Monadic("Cbrt", math.Cbrt))
	o.Add(Monadic("Ceiling", math.Ceil))
	o.Add(Monadic("Cos", math.Cos))
	o.Add(Monadic("Cosh", math.Cosh))
	o.Add(Monadic("Exp", precise1(bigfloat.Exp, func(x float64) bool { return finite(x) && math.Abs(x) < 1<<20 }, math.Exp)))
	o.Add(Monadic("Floor", math.Floor))
	o.Add(Dyadic("Hypot", math.Hypot))
	o.Add(Monadic("Log", precise1(bigfloat.Log, func(x float64) bool { return finite(x) && x > 0 }, math.Log)))
	o.Add(Dyadic("Log", func(x, base float64) float64 {
		return math.Log(x) / math.Log(base)
	}))
	o.Add(Monadic("Log10", math.Log10))
	o.Add(Dyadic("Max", math.Max))
	o.Add(Dyadic("Min", math.Min))
	o.Add(Dyadic("Pow", bigpow))
	o.Add(Monadic("Round", math.RoundToEven))
	o.Add(Monadic("Sign", sign))
	o.Add(Monadic("Sin", math.Sin))
	o.Add(Monadic("Sinh", math.Sinh))
	o.Add(Monadic("Sqrt", math.Sqrt))
	o.Add(Monadic("Tan", math.Tan))
	o.Add(Monadic("Tanh", math.Tanh))
	o.Add(Monadic("Truncate", math.Trunc))

	o.Add(Niladic("Pi", func() float64 {
		r, _ := bigfloat.Pi(new(big.Float).SetPrec(bigprec)).Float64()
		return r
	}))
	o.Add(Niladic("E", func() float64 { return math.E }))
	return o
}()
