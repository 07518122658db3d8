// Package terminfo decodes the compiled terminal-capability database
// (terminfo) binary format: a base header/bools/numbers/strings
// section plus an optional extended-capabilities trailer.
package terminfo

// Terminfo is the decoded content of one terminfo database entry.
// Booleans is the set of asserted boolean capability names; Numbers
// and Strings map capability short-names to their values. Only
// strictly positive numeric values are recorded — the "absent" (-1)
// and "cancelled" (-2) sentinels are elided, as are sentinel string
// offsets.
type Terminfo struct {
	Booleans map[string]struct{}
	Numbers  map[string]int32
	Strings  map[string][]byte

	// NumberWidth is 2 or 4, fixed by the file's magic number.
	NumberWidth int
}

func newTerminfo() *Terminfo {
	return &Terminfo{
		Booleans: make(map[string]struct{}),
		Numbers:  make(map[string]int32),
		Strings:  make(map[string][]byte),
	}
}

// Bool reports whether the named boolean capability is asserted.
func (t *Terminfo) Bool(name string) bool {
	_, ok := t.Booleans[name]
	return ok
}

// Number returns the named numeric capability and whether it was
// present.
func (t *Terminfo) Number(name string) (int32, bool) {
	v, ok := t.Numbers[name]
	return v, ok
}

// String returns the named string capability's raw bytes (no
// trailing NUL) and whether it was present.
func (t *Terminfo) String(name string) ([]byte, bool) {
	v, ok := t.Strings[name]
	return v, ok
}
