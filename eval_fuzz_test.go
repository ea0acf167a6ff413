//go:build go1.18
// +build go1.18

package equation_test

import (
	"testing"

	eqn "github.com/zephyrtronium/equation"
)

func FuzzEval(f *testing.F) {
	f.Add("x", 1.0)
	f.Add("y * x - 1", 2.0)
	f.Add("Pow(x, Exp(x))", -3.5)
	f.Fuzz(func(t *testing.T, s string, x float64) {
		p, err := eqn.Parse(s)
		if err != nil {
			return
		}
		// Every program that parses is well formed, so evaluating it with an
		// argument for each variable always succeeds.
		args := make([]float64, len(p.Vars()))
		for i := range args {
			args[i] = x
		}
		if _, err := p.Eval(args...); err != nil {
			t.Errorf("error evaluating %q (%v): %v", s, p, err)
		}
	})
}
