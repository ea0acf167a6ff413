package equation_test

import (
	"math"
	"testing"

	eqn "github.com/zephyrtronium/equation"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name  string
		ok    bool
		op    string
		kind  eqn.OpKind
		arity int
	}{
		{"+", true, "+", eqn.OpBinary, 2},
		{"-", true, "-", eqn.OpBinary, 2},
		{"%", true, "%", eqn.OpBinary, 2},
		{"Min", true, "Min", eqn.OpFunc, 2},
		{"Min2", true, "Min", eqn.OpFunc, 2},
		{"Min3", false, "", 0, 0},
		{"Sin", true, "Sin", eqn.OpFunc, 1},
		{"Sin1", true, "Sin", eqn.OpFunc, 1},
		{"Log", false, "", 0, 0},
		{"Log1", true, "Log", eqn.OpFunc, 1},
		{"Log2", true, "Log", eqn.OpFunc, 2},
		{"Log10", true, "Log10", eqn.OpFunc, 1},
		{"Atan2", true, "Atan2", eqn.OpFunc, 2},
		{"Pi", true, "Pi", eqn.OpFunc, 0},
		{"Pi0", true, "Pi", eqn.OpFunc, 0},
		{"x", false, "", 0, 0},
		{"sin", false, "", 0, 0},
		{"1", false, "", 0, 0},
	}
	ops := eqn.DefaultOps()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			op, ok := ops.Resolve(c.name)
			if ok != c.ok {
				t.Fatalf("wrong resolution for %q: want %t, got %t (%v)", c.name, c.ok, ok, op)
			}
			if !ok {
				return
			}
			if op.Name != c.op || op.Kind != c.kind || op.Arity != c.arity {
				t.Errorf("wrong op for %q: want %s %s/%d, got %s %s/%d", c.name, c.kind, c.op, c.arity, op.Kind, op.Name, op.Arity)
			}
		})
	}
}

func TestResolveUnary(t *testing.T) {
	ops := eqn.DefaultOps()
	op, ok := ops.ResolveUnary("-")
	if !ok || op.Kind != eqn.OpUnary || op.Arity != 1 || op.Prec != eqn.PrecUnary {
		t.Errorf("wrong unary minus: %+v", op)
	}
	if _, ok := ops.ResolveUnary("+"); ok {
		t.Errorf("+ resolved as unary")
	}
	known := map[string]bool{"-": true, "Sin": true, "Log2": true, "Log": false, "y": false}
	for name, want := range known {
		if got := ops.Known(name); got != want {
			t.Errorf("wrong Known(%q): want %t, got %t", name, want, got)
		}
	}
}

func TestOpsAdd(t *testing.T) {
	ops := eqn.DefaultOps()
	ops.Add(eqn.Dyadic("Sin", func(x, y float64) float64 { return x * y }))
	if _, ok := ops.Resolve("Sin"); ok {
		t.Errorf("Sin resolved without arity after adding overload")
	}
	s1, ok := ops.Resolve("Sin1")
	if !ok || s1.Fn([]float64{0}) != 0 {
		t.Errorf("wrong Sin1: %v", s1)
	}
	s2, ok := ops.Resolve("Sin2")
	if !ok || s2.Fn([]float64{2, 3}) != 6 {
		t.Errorf("wrong Sin2: %v", s2)
	}
	// Replacing an overload keeps the count.
	ops.Add(eqn.Dyadic("Sin", func(x, y float64) float64 { return x + y }))
	s2, ok = ops.Resolve("Sin2")
	if !ok || s2.Fn([]float64{2, 3}) != 5 {
		t.Errorf("wrong Sin2 after replacing: %v", s2)
	}
	if _, ok := ops.Resolve("Sin"); ok {
		t.Errorf("Sin resolved without arity after replacing overload")
	}
	// The default table is unchanged.
	if _, ok := eqn.DefaultOps().Resolve("Sin"); !ok {
		t.Errorf("adding to a copy changed the defaults")
	}
	if _, err := eqn.Parse("Sin(1)"); err != nil {
		t.Errorf("adding to a copy changed parsing: %v", err)
	}
}

func TestOpsAddPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic adding operation of no kind")
		}
	}()
	eqn.NewOps().Add(&eqn.Op{Name: "?"})
}

func TestFuncNegativeArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic creating function with negative arity")
		}
	}()
	eqn.Func("F", -1, func([]float64) float64 { return 0 })
}

func TestPreciseFuncs(t *testing.T) {
	ops := eqn.DefaultOps()
	call := func(name string, args ...float64) float64 {
		t.Helper()
		op, ok := ops.Resolve(name)
		if !ok {
			t.Fatalf("no %s", name)
		}
		return op.Fn(args)
	}
	for _, x := range []float64{-20, -1, -0.5, 0, 0.5, 1, 2, 10, 100} {
		if got, want := call("Exp", x), math.Exp(x); !near(got, want) {
			t.Errorf("Exp(%g): want %g, got %g", x, want, got)
		}
	}
	for _, x := range []float64{1e-10, 0.5, 1, 2, math.E, 10, 1e10} {
		if got, want := call("Log1", x), math.Log(x); !near(got, want) {
			t.Errorf("Log(%g): want %g, got %g", x, want, got)
		}
	}
	for _, c := range [][2]float64{{2, 0.5}, {2, 10}, {10, -2}, {1.5, 3.25}, {7, 0}} {
		if got, want := call("Pow", c[0], c[1]), math.Pow(c[0], c[1]); !near(got, want) {
			t.Errorf("Pow(%g, %g): want %g, got %g", c[0], c[1], want, got)
		}
	}
	// Outside the domain of the precise versions.
	if r := call("Log1", -1); !math.IsNaN(r) {
		t.Errorf("Log(-1): want NaN, got %g", r)
	}
	if r := call("Log1", 0); !math.IsInf(r, -1) {
		t.Errorf("Log(0): want -Inf, got %g", r)
	}
	if r := call("Exp", math.Inf(1)); !math.IsInf(r, 1) {
		t.Errorf("Exp(Inf): want Inf, got %g", r)
	}
	if r := call("Pow", -8, 1.0/3); !math.IsNaN(r) {
		t.Errorf("Pow(-8, 1/3): want NaN, got %g", r)
	}
	if r := call("Pi"); !near(r, math.Pi) {
		t.Errorf("Pi: want %g, got %g", math.Pi, r)
	}
}

func TestOpKindString(t *testing.T) {
	cases := map[eqn.OpKind]string{
		eqn.OpBinary: "binary",
		eqn.OpUnary:  "unary",
		eqn.OpFunc:   "function",
		0:            "OpKind(0)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("wrong string for %d: want %q, got %q", int(k), want, got)
		}
	}
}
