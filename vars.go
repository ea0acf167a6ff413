package equation

import "strconv"

// Var is a named variable slot. Its index is its position in the directory
// that created it, which is also the positional argument that supplies its
// value during evaluation when it has no value of its own.
//
// Vars are not safe to modify while a program using them is being evaluated.
type Var struct {
	name  string
	index int
	val   float64
	set   bool
}

// Name returns the variable's name.
func (v *Var) Name() string {
	return v.name
}

// Index returns the variable's index in its directory.
func (v *Var) Index() int {
	return v.index
}

// Value returns the variable's value and whether it has one.
func (v *Var) Value() (float64, bool) {
	return v.val, v.set
}

// Set gives the variable a value, which takes precedence over positional
// arguments. Returns v for chaining.
func (v *Var) Set(x float64) *Var {
	v.val = x
	v.set = true
	return v
}

// Clear removes the variable's value so that positional arguments supply it
// again.
func (v *Var) Clear() {
	v.set = false
}

func (v *Var) String() string {
	if !v.set {
		return v.name + "#" + strconv.Itoa(v.index)
	}
	return v.name + "#" + strconv.Itoa(v.index) + "=" + strconv.FormatFloat(v.val, 'g', -1, 64)
}

// Directory allocates variables by name. The first name seen gets index 0, the
// next new name index 1, and so on. A Directory is not safe for concurrent use.
type Directory struct {
	vars  []*Var
	names map[string]*Var
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{names: make(map[string]*Var)}
}

// Var returns the variable with the given name, allocating it if this is the
// first time the name is seen.
func (d *Directory) Var(name string) *Var {
	if v := d.names[name]; v != nil {
		return v
	}
	if d.names == nil {
		d.names = make(map[string]*Var)
	}
	v := &Var{name: name, index: len(d.vars)}
	d.vars = append(d.vars, v)
	d.names[name] = v
	return v
}

// Lookup returns the variable with the given name, if the directory has one.
func (d *Directory) Lookup(name string) (*Var, bool) {
	v := d.names[name]
	return v, v != nil
}

// Vars returns the directory's variables in index order.
func (d *Directory) Vars() []*Var {
	return append([]*Var(nil), d.vars...)
}

// Len returns the number of variables in the directory.
func (d *Directory) Len() int {
	return len(d.vars)
}

// truncate forgets variables allocated after the directory had n of them.
func (d *Directory) truncate(n int) {
	for _, v := range d.vars[n:] {
		delete(d.names, v.name)
	}
	d.vars = d.vars[:n]
}
