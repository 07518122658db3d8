// Package expand implements the ncurses-compatible postfix stack
// virtual machine that evaluates parameterized terminfo capability
// strings.
package expand

// Kind discriminates the two Parameter variants.
type Kind int

const (
	KindNumber Kind = iota
	KindString
)

// Parameter is a VM operand: either a signed 32-bit number or a byte
// string. It is the same tagged-union shape used for the stack,
// parameters, and static/dynamic variable cells — never a bare
// primitive, since any of those slots may hold either variant.
type Parameter struct {
	Kind Kind
	Num  int32
	Str  []byte
}

// Number constructs a numeric Parameter.
func Number(n int32) Parameter { return Parameter{Kind: KindNumber, Num: n} }

// String constructs a string Parameter from raw bytes.
func String(s []byte) Parameter { return Parameter{Kind: KindString, Str: s} }

// IsNumber reports whether p holds a number.
func (p Parameter) IsNumber() bool { return p.Kind == KindNumber }

// IsString reports whether p holds a string.
func (p Parameter) IsString() bool { return p.Kind == KindString }
