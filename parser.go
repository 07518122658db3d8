package terminfo

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/charithe/terminfo-go/capname"
)

const (
	magic16BitNumbers = 0x011a
	magic32BitNumbers = 0x021e
)

// checkOffset interprets a raw 16-bit string/name offset, reporting
// false for the "absent" (0xFFFF) and "cancelled" (0xFFFE) sentinels.
func checkOffset(raw uint16) (int, bool) {
	switch int16(raw) {
	case -1, -2:
		return 0, false
	default:
		return int(raw), true
	}
}

// getString returns the NUL-terminated byte range in table starting
// at offset, not including the NUL.
func getString(table []byte, offset int) ([]byte, error) {
	if offset < 0 || offset > len(table) {
		return nil, ErrUnsupportedFormat
	}
	rest := table[offset:]
	idx := bytes.IndexByte(rest, 0)
	if idx < 0 {
		return nil, ErrUnterminatedString
	}
	return rest[:idx], nil
}

// readNumber reads one signed number field of the given width,
// sign-extending 16-bit values to 32 bits. present is false for
// non-positive values (including the sentinels), which the caller
// must not record.
func readNumber(c *cursor, numberWidth int) (value int32, present bool, err error) {
	if numberWidth == 4 {
		raw, err := c.readLE32()
		if err != nil {
			return 0, false, err
		}
		value = int32(raw)
	} else {
		raw, err := c.readLE16()
		if err != nil {
			return 0, false, err
		}
		value = int32(int16(raw))
	}
	return value, value > 0, nil
}

// Parse decodes a terminfo database entry from buf. The extended
// capabilities trailer is optional: a read failure encountered before
// any of its structural fields have been validated is treated as "no
// extended data" and Parse succeeds with the base section alone: see
// §9's fault-tolerance asymmetry.
func Parse(buf []byte) (*Terminfo, error) {
	t := newTerminfo()
	c := &cursor{buf: buf}

	if err := parseBase(t, c); err != nil {
		return nil, err
	}

	if err := parseExtended(t, c); err != nil {
		var ioErr IOError
		if errors.As(err, &ioErr) {
			return t, nil
		}
		return nil, err
	}

	return t, nil
}

func parseBase(t *Terminfo, c *cursor) error {
	magic, err := c.readLE16()
	if err != nil {
		return err
	}
	nameSize, err := c.readLE16()
	if err != nil {
		return err
	}
	boolCount, err := c.readLE16()
	if err != nil {
		return err
	}
	numCount, err := c.readLE16()
	if err != nil {
		return err
	}
	strCount, err := c.readLE16()
	if err != nil {
		return err
	}
	strSize, err := c.readLE16()
	if err != nil {
		return err
	}

	switch magic {
	case magic16BitNumbers:
		t.NumberWidth = 2
	case magic32BitNumbers:
		t.NumberWidth = 4
	default:
		return ErrBadMagic
	}

	if int(boolCount) > capname.BoolCount || int(numCount) > capname.NumCount || int(strCount) > capname.StrCount {
		return ErrUnsupportedFormat
	}

	c.seekRelative(int(nameSize))

	for i := 0; i < int(boolCount); i++ {
		v, err := c.readU8()
		if err != nil {
			return err
		}
		switch v {
		case 0:
			continue
		case 1:
			t.Booleans[capname.Bools[i]] = struct{}{}
		default:
			return InvalidBooleanValue{v}
		}
	}

	c.align()

	for i := 0; i < int(numCount); i++ {
		value, present, err := readNumber(c, t.NumberWidth)
		if err != nil {
			return err
		}
		if present {
			t.Numbers[capname.Nums[i]] = value
		}
	}

	strOffsets, err := c.readSlice(2 * int(strCount))
	if err != nil {
		return err
	}
	strTable, err := c.readSlice(int(strSize))
	if err != nil {
		return err
	}

	offsets := &cursor{buf: strOffsets}
	for i := 0; i < int(strCount); i++ {
		raw, _ := offsets.readLE16() // exactly sized slice, cannot fail
		offset, ok := checkOffset(raw)
		if !ok {
			continue
		}
		value, err := getString(strTable, offset)
		if err != nil {
			return err
		}
		t.Strings[capname.Strings[i]] = value
	}

	return nil
}

func parseExtended(t *Terminfo, c *cursor) error {
	c.align()

	boolCount, err := c.readLE16()
	if err != nil {
		return err
	}
	numCount, err := c.readLE16()
	if err != nil {
		return err
	}
	strCount, err := c.readLE16()
	if err != nil {
		return err
	}
	if _, err := c.readLE16(); err != nil { // ext_str_usage: unused
		return err
	}
	strLimit, err := c.readLE16()
	if err != nil {
		return err
	}

	boolsRaw, err := c.readSlice(int(boolCount))
	if err != nil {
		return err
	}
	c.align()
	numsRaw, err := c.readSlice(t.NumberWidth * int(numCount))
	if err != nil {
		return err
	}
	strsRaw, err := c.readSlice(2 * int(strCount))
	if err != nil {
		return err
	}
	nameCount := int(boolCount) + int(numCount) + int(strCount)
	namesRaw, err := c.readSlice(2 * nameCount)
	if err != nil {
		return err
	}
	strTable, err := c.readSlice(int(strLimit))
	if err != nil {
		return err
	}

	namesBase, err := extendedNamesBase(strsRaw, strTable)
	if err != nil {
		return err
	}
	if namesBase > len(strTable) {
		return ErrUnsupportedFormat
	}
	namesTable := strTable[namesBase:]

	bools := &cursor{buf: boolsRaw}
	names := &cursor{buf: namesRaw}
	for {
		v, err := bools.readU8()
		if err != nil {
			break
		}
		nameOff, err := names.readLE16()
		if err != nil {
			return ErrUnsupportedFormat
		}
		switch v {
		case 0:
			continue
		case 1:
		default:
			return InvalidBooleanValue{v}
		}
		offset, ok := checkOffset(nameOff)
		if !ok {
			return ErrUnsupportedFormat
		}
		name, err := getString(namesTable, offset)
		if err != nil {
			return err
		}
		if !utf8.Valid(name) {
			return UTF8Error{errUtf8}
		}
		t.Booleans[string(name)] = struct{}{}
	}

	nums := &cursor{buf: numsRaw}
	for {
		value, present, err := readNumber(nums, t.NumberWidth)
		if err != nil {
			break
		}
		nameOff, err := names.readLE16()
		if err != nil {
			return ErrUnsupportedFormat
		}
		if !present {
			continue
		}
		offset, ok := checkOffset(nameOff)
		if !ok {
			return ErrUnsupportedFormat
		}
		name, err := getString(namesTable, offset)
		if err != nil {
			return err
		}
		if !utf8.Valid(name) {
			return UTF8Error{errUtf8}
		}
		t.Numbers[string(name)] = value
	}

	strs := &cursor{buf: strsRaw}
	for {
		strOff, err := strs.readLE16()
		if err != nil {
			break
		}
		nameOff, err := names.readLE16()
		if err != nil {
			return ErrUnsupportedFormat
		}
		strOffset, strOk := checkOffset(strOff)
		nameOffset, nameOk := checkOffset(nameOff)
		if !strOk || !nameOk {
			continue
		}
		value, err := getString(strTable, strOffset)
		if err != nil {
			return err
		}
		name, err := getString(namesTable, nameOffset)
		if err != nil {
			return err
		}
		if !utf8.Valid(name) {
			return UTF8Error{errUtf8}
		}
		t.Strings[string(name)] = value
	}

	return nil
}

// extendedNamesBase computes the split point between the values
// region and the names region of the extended string pool: the sum
// of len(value)+1 over every non-sentinel value offset in strsRaw.
func extendedNamesBase(strsRaw, strTable []byte) (int, error) {
	offsets := &cursor{buf: strsRaw}
	base := 0
	for {
		raw, err := offsets.readLE16()
		if err != nil {
			break
		}
		offset, ok := checkOffset(raw)
		if !ok {
			continue
		}
		value, err := getString(strTable, offset)
		if err != nil {
			return 0, err
		}
		base += len(value) + 1
	}
	return base, nil
}

var errUtf8 = errInvalidUTF8{}

type errInvalidUTF8 struct{}

func (errInvalidUTF8) Error() string { return "invalid UTF-8 in extended capability name" }
