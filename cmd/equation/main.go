package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	eqn "github.com/zephyrtronium/equation"
)

const usage = "usage: equation [-r] [-d sep] [-p places] [-s name=value]... [expr [arg...]]"

type config struct {
	rpn    bool
	sep    rune
	places int
	round  bool
	with   [][2]string
}

func main() {
	log.SetFlags(0)
	opts, optind, err := getopt.Getopts(os.Args, "rd:p:s:h")
	if err != nil {
		log.Fatal(err)
	}
	cfg := config{sep: '.'}
	for _, opt := range opts {
		switch opt.Option {
		case 'r':
			cfg.rpn = true
		case 'd':
			r, sz := utf8.DecodeRuneInString(opt.Value)
			if sz == 0 || sz != len(opt.Value) {
				log.Fatalf("decimal separator must be one character, not %q", opt.Value)
			}
			cfg.sep = r
		case 'p':
			n, err := strconv.Atoi(opt.Value)
			if err != nil || n < 0 {
				log.Fatalf("places (%s) must be a non-negative integer", opt.Value)
			}
			cfg.places, cfg.round = n, true
		case 's':
			d := strings.SplitN(opt.Value, "=", 2)
			if len(d) != 2 {
				log.Fatalf(`variable definitions must be "name=value", not %q`, opt.Value)
			}
			cfg.with = append(cfg.with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		case 'h':
			fmt.Println(usage)
			return
		}
	}
	args := os.Args[optind:]

	if len(args) > 0 {
		pos := make([]float64, 0, len(args)-1)
		for _, a := range args[1:] {
			x, err := eqn.EvalString(a)
			if err != nil {
				log.Fatalf("argument %q: %v", a, err)
			}
			pos = append(pos, x)
		}
		if !run(cfg, args[0], pos, os.Stdout) {
			os.Exit(1)
		}
		return
	}

	ok := true
	scan := bufio.NewScanner(os.Stdin)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		ok = run(cfg, line, nil, os.Stdout) && ok
	}
	if err := scan.Err(); err != nil {
		log.Fatal(err)
	}
	if !ok {
		os.Exit(1)
	}
}

// run parses and evaluates one expression and prints its result or error.
func run(cfg config, src string, args []float64, w io.Writer) bool {
	dir := eqn.NewDirectory()
	parse := eqn.Parse
	if cfg.rpn {
		parse = eqn.ParseRPN
	}
	p, err := parse(src, eqn.DecimalSeparator(cfg.sep), eqn.Vars(dir))
	if err != nil {
		report(w, err)
		return false
	}
	// Set variables after parsing so that unset ones keep their positional
	// indices.
	for _, d := range cfg.with {
		x, err := eqn.EvalString(d[1])
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		if v, ok := dir.Lookup(d[0]); ok {
			v.Set(x)
		}
	}
	r, err := p.Eval(args...)
	if err != nil {
		report(w, err)
		return false
	}
	if cfg.round && !math.IsInf(r, 0) && !math.IsNaN(r) {
		fmt.Fprintln(w, decimal.NewFromFloat(r).StringFixed(int32(cfg.places)))
		return true
	}
	fmt.Fprintf(w, "%g\n", r)
	return true
}

var mark = color.New(color.FgRed, color.Bold).SprintFunc()

// report prints an error, highlighting the faulty part of the input if the
// error has a position.
func report(w io.Writer, err error) {
	var ie eqn.InputError
	if !errors.As(err, &ie) {
		fmt.Fprintln(w, err)
		return
	}
	src := ie.Source()
	col := ie.Pos()
	var b strings.Builder
	i := 0
	for _, r := range src {
		if i == col {
			b.WriteString(mark(string(r)))
		} else {
			b.WriteRune(r)
		}
		i++
	}
	if col >= i {
		b.WriteString(mark("_"))
	}
	fmt.Fprintln(w, b.String())
	fmt.Fprintln(w, err)
}
