package equation

import "strconv"

// reducer converts resolved infix tokens to postfix by repeatedly applying the
// most binding remaining operation to its operands.
//
// A value token is a literal, a variable, or an operation that has been
// applied; its frag is the program computing it. Applying an operation turns
// the operation's token into a value and marks its operands and any brackets
// around them as gone. Slots never move, so positions stay meaningful.
type reducer struct {
	src  string
	toks []token
}

// reduce converts toks to a program.
func reduce(src string, toks []token) ([]instr, error) {
	r := reducer{src: src, toks: toks}
	// Each iteration either applies one operation or fails, so this runs at
	// most once per operation.
	for {
		k := r.best()
		if k < 0 {
			break
		}
		var err error
		t := &r.toks[k]
		switch {
		case t.kind == tokenCall:
			err = r.call(k)
		case t.op.Kind == OpUnary && t.op.Arity == 1:
			err = r.unary(k)
		case t.op.Kind == OpBinary && t.op.Arity == 2:
			err = r.binary(k)
		default:
			return nil, &InternalError{Msg: t.op.Kind.String() + " operation " + t.op.Name + " with " + strconv.Itoa(t.op.Arity) + " operands at " + strconv.Itoa(t.pos)}
		}
		if err != nil {
			return nil, err
		}
		if r.toks[k].op != nil {
			panic("equation: no progress reducing " + r.toks[k].String())
		}
	}
	return r.residue()
}

// best finds the live operation with the highest bracket depth, then highest
// priority. Ties go to the leftmost. The result is -1 if there are none.
func (r *reducer) best() int {
	k := -1
	for i := range r.toks {
		t := &r.toks[i]
		if t.gone || t.op == nil {
			continue
		}
		if k < 0 {
			k = i
			continue
		}
		b := &r.toks[k]
		if t.major > b.major || t.major == b.major && t.minor > b.minor {
			k = i
		}
	}
	return k
}

// next returns the index of the first live token after i, or -1.
func (r *reducer) next(i int) int {
	for i++; i < len(r.toks); i++ {
		if !r.toks[i].gone {
			return i
		}
	}
	return -1
}

// prev returns the index of the last live token before i, or -1.
func (r *reducer) prev(i int) int {
	for i--; i >= 0; i-- {
		if !r.toks[i].gone {
			return i
		}
	}
	return -1
}

// isValue returns whether the token at i is a live value.
func (r *reducer) isValue(i int) bool {
	if i < 0 {
		return false
	}
	t := &r.toks[i]
	return !t.gone && t.op == nil && t.frag != nil
}

// match finds the live bracket matching the one at i, searching forward from
// an opening bracket or backward from a closing one.
func (r *reducer) match(i int) (int, error) {
	step, open, close := 1, tokenOpen, tokenClose
	if r.toks[i].kind == tokenClose {
		step, open, close = -1, tokenClose, tokenOpen
	}
	depth := 0
	for j := i; j >= 0 && j < len(r.toks); j += step {
		t := &r.toks[j]
		if t.gone {
			continue
		}
		switch t.kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return -1, &StructureError{Col: r.toks[i].pos, Src: r.src, Msg: "unbalanced brackets"}
}

// group takes the single value enclosed by the brackets at i and j, along
// with any redundant brackets directly around it, and returns its index.
func (r *reducer) group(i, j int) (int, error) {
	if i > j {
		i, j = j, i
	}
	for {
		a, b := r.next(i), r.prev(j)
		switch {
		case a == j:
			return -1, &StructureError{Col: r.toks[j].pos, Src: r.src, Msg: "nothing between brackets"}
		case a == b && r.isValue(a):
			r.toks[i].gone = true
			r.toks[j].gone = true
			return a, nil
		case r.toks[a].kind == tokenOpen:
			m, err := r.match(a)
			if err != nil {
				return -1, err
			}
			if m != b {
				return -1, r.stray(a, b)
			}
			r.toks[i].gone = true
			r.toks[j].gone = true
			i, j = a, b
		default:
			return -1, r.stray(a, b)
		}
	}
}

// stray creates an error for brackets between a and b that enclose more than
// one value.
func (r *reducer) stray(a, b int) error {
	for k := a; k >= 0 && k <= b; k = r.next(k) {
		if t := &r.toks[k]; t.kind == tokenSep {
			return &StructureError{Col: t.pos, Src: r.src, Msg: "argument separator outside a function call"}
		}
	}
	return &StructureError{Col: r.toks[a].pos, Src: r.src, Msg: "no operator between values"}
}

// operand finds the value operand adjacent to an operation, looking in the
// direction of step from the operation at k. The result is -1 if there is
// none.
func (r *reducer) operand(k, step int) (int, error) {
	var i int
	var facing tokenKind
	if step < 0 {
		i, facing = r.prev(k), tokenClose
	} else {
		i, facing = r.next(k), tokenOpen
	}
	if i < 0 {
		return -1, nil
	}
	if r.isValue(i) {
		return i, nil
	}
	if r.toks[i].kind != facing {
		return -1, nil
	}
	j, err := r.match(i)
	if err != nil {
		return -1, err
	}
	return r.group(i, j)
}

// apply turns the operation at k into a value computed from the operands at
// args, which are consumed.
func (r *reducer) apply(k int, args ...int) {
	t := &r.toks[k]
	n := 1
	for _, a := range args {
		n += len(r.toks[a].frag)
	}
	frag := make([]instr, 0, n)
	for _, a := range args {
		frag = append(frag, r.toks[a].frag...)
		r.toks[a].gone = true
		r.toks[a].frag = nil
	}
	t.frag = append(frag, instr{kind: instrOp, op: t.op})
	t.op = nil
}

func (r *reducer) missing(k int, side string) error {
	t := &r.toks[k]
	return &StructureError{Col: t.pos, Src: r.src, Msg: "missing " + side + " operand of " + t.text}
}

func (r *reducer) unary(k int) error {
	x, err := r.operand(k, 1)
	if err != nil {
		return err
	}
	if x < 0 {
		return r.missing(k, "right")
	}
	r.apply(k, x)
	return nil
}

func (r *reducer) binary(k int) error {
	x, err := r.operand(k, -1)
	if err != nil {
		return err
	}
	if x < 0 {
		return r.missing(k, "left")
	}
	y, err := r.operand(k, 1)
	if err != nil {
		return err
	}
	if y < 0 {
		return r.missing(k, "right")
	}
	r.apply(k, x, y)
	return nil
}

func (r *reducer) call(k int) error {
	t := &r.toks[k]
	open := r.next(k)
	if open < 0 || r.toks[open].kind != tokenOpen {
		return &StructureError{Col: t.pos, Src: r.src, Msg: "function " + t.text + " not followed by opening bracket"}
	}
	var args []int
	sep := false
	i := r.next(open)
	for {
		if i < 0 {
			return &StructureError{Col: r.toks[open].pos, Src: r.src, Msg: "opening bracket with no closing bracket"}
		}
		a := &r.toks[i]
		switch {
		case a.kind == tokenClose:
			if sep {
				return &StructureError{Col: a.pos, Src: r.src, Msg: "no argument after a comma"}
			}
			if len(args) != t.op.Arity {
				return &ArityError{Col: t.pos, Src: r.src, Func: t.text, Want: t.op.Arity, Got: len(args)}
			}
			r.toks[open].gone = true
			a.gone = true
			r.apply(k, args...)
			return nil
		case a.kind == tokenSep:
			if sep {
				return &StructureError{Col: a.pos, Src: r.src, Msg: "no argument after a comma"}
			}
			if len(args) == 0 {
				return &StructureError{Col: a.pos, Src: r.src, Msg: "no argument before a comma"}
			}
			a.gone = true
			sep = true
		case r.isValue(i), a.kind == tokenOpen:
			if len(args) > 0 && !sep {
				return &StructureError{Col: a.pos, Src: r.src, Msg: "missing comma between arguments"}
			}
			x := i
			if a.kind == tokenOpen {
				j, err := r.match(i)
				if err != nil {
					return err
				}
				if x, err = r.group(i, j); err != nil {
					return err
				}
			}
			args = append(args, x)
			sep = false
			// Brackets around the argument are gone now, so continuing from
			// the argument itself skips them.
			i = x
		default:
			return &StructureError{Col: a.pos, Src: r.src, Msg: "unexpected " + strconv.Quote(a.text) + " in arguments of " + t.text}
		}
		i = r.next(i)
	}
}

// residue checks that all operations have been applied and returns the
// program for the single remaining value.
func (r *reducer) residue() ([]instr, error) {
	first := r.next(-1)
	if first < 0 {
		return nil, &StructureError{Col: 0, Src: r.src, Msg: "no expression"}
	}
	if r.isValue(first) {
		if k := r.next(first); k >= 0 {
			return nil, r.trailing(k)
		}
		return r.toks[first].frag, nil
	}
	if r.toks[first].kind != tokenOpen {
		return nil, r.trailing(first)
	}
	last, err := r.match(first)
	if err != nil {
		return nil, err
	}
	if k := r.next(last); k >= 0 {
		return nil, r.trailing(k)
	}
	v, err := r.group(first, last)
	if err != nil {
		return nil, err
	}
	return r.toks[v].frag, nil
}

// trailing creates an error for a token left over after reduction.
func (r *reducer) trailing(k int) error {
	t := &r.toks[k]
	switch {
	case r.isValue(k), t.kind == tokenOpen:
		return &StructureError{Col: t.pos, Src: r.src, Msg: "no operator between values"}
	case t.kind == tokenSep:
		return &StructureError{Col: t.pos, Src: r.src, Msg: "argument separator outside a function call"}
	default:
		return &StructureError{Col: t.pos, Src: r.src, Msg: "unexpected " + strconv.Quote(t.text)}
	}
}
