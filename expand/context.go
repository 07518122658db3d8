package expand

// ExpandContext holds the 26 static variables (A-Z) that persist
// across Expand calls for one terminal. To match ncurses, one
// ExpandContext should be reused for the lifetime of one terminal and
// never shared between concurrently-executing Expand calls.
type ExpandContext struct {
	static [26]Parameter
}

// NewContext returns a context with every static variable initialized
// to Number(0).
func NewContext() *ExpandContext {
	ctx := &ExpandContext{}
	for i := range ctx.static {
		ctx.static[i] = Number(0)
	}
	return ctx
}

// expansion carries the mutable state of a single Expand call: the
// operand stack, the output buffer, the 26 dynamic variables (reset
// every call), and the padded parameter vector.
type expansion struct {
	ctx         *ExpandContext
	output      []byte
	stack       []Parameter
	dvars       [26]Parameter
	mparams     []Parameter
	incremented bool
}

func (e *expansion) push(p Parameter) { e.stack = append(e.stack, p) }

func (e *expansion) pop() (Parameter, bool) {
	if len(e.stack) == 0 {
		return Parameter{}, false
	}
	p := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return p, true
}

// popNumber pops and requires a Number, reporting op on failure.
func (e *expansion) popNumber(op byte) (int32, error) {
	p, ok := e.pop()
	if !ok {
		return 0, StackUnderflow{op}
	}
	if !p.IsNumber() {
		return 0, TypeMismatch{op}
	}
	return p.Num, nil
}

// popTwoNumbers pops y (top of stack) then x (next), matching the
// push order of `%p1%p2%<op>` where p1 ends up as x and p2 as y.
func (e *expansion) popTwoNumbers(op byte) (x, y int32, err error) {
	py, okY := e.pop()
	px, okX := e.pop()
	if !okY || !okX {
		return 0, 0, StackUnderflow{op}
	}
	if !py.IsNumber() || !px.IsNumber() {
		return 0, 0, TypeMismatch{op}
	}
	return px.Num, py.Num, nil
}

// Expand evaluates cap against params and the context's static
// variables, returning the expanded byte string. params is padded
// with Number(0) up to 9 entries; dynamic variables are reset to
// Number(0) for this call only.
func (ctx *ExpandContext) Expand(cap []byte, params []Parameter) ([]byte, error) {
	e := &expansion{
		ctx:     ctx,
		output:  make([]byte, 0, len(cap)),
		mparams: append([]Parameter(nil), params...),
	}
	for i := range e.dvars {
		e.dvars[i] = Number(0)
	}
	for len(e.mparams) < 9 {
		e.mparams = append(e.mparams, Number(0))
	}

	state := stateFn(scanText)
	for _, c := range cap {
		next, err := state(e, c)
		if err != nil {
			return nil, err
		}
		state = next
	}
	return e.output, nil
}
