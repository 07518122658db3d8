package expand

import "math"

// stateFn processes one input byte and returns the state that should
// process the next one: a per-state dispatch shape where states that
// carry data (an integer-constant accumulator, format flags,
// conditional-skip nesting depth) do so as closures rather than
// struct fields mutated in place.
type stateFn func(e *expansion, c byte) (stateFn, error)

// scanText is the initial/default state: plain bytes pass through
// untouched, '%' begins a directive, and '$' begins a delay directive.
func scanText(e *expansion, c byte) (stateFn, error) {
	switch c {
	case '%':
		return percent, nil
	case '$':
		return delay, nil
	default:
		e.output = append(e.output, c)
		return scanText, nil
	}
}

// delay consumes every byte of an ncurses padding directive ($<...>)
// up to and including the closing '>', emitting nothing. Unlike a
// literal reading of "drop the $ and one following byte", the
// historical behavior (and this implementation) discards the entire
// delay argument.
func delay(e *expansion, c byte) (stateFn, error) {
	if c == '>' {
		return scanText, nil
	}
	return delay, nil
}

func percent(e *expansion, c byte) (stateFn, error) {
	switch c {
	case '%':
		e.output = append(e.output, c)
		return scanText, nil

	case 'c':
		n, err := e.popNumber('c')
		if err != nil {
			return nil, err
		}
		if n == 0 {
			e.output = append(e.output, 0x80)
		} else {
			e.output = append(e.output, byte(n))
		}
		return scanText, nil

	case 'p':
		return pushParam, nil
	case 'P':
		return setVar, nil
	case 'g':
		return getVar, nil
	case '\'':
		return charConstant, nil
	case '{':
		return intConstant(0), nil

	case 'l':
		arg, ok := e.pop()
		if !ok {
			return nil, StackUnderflow{c}
		}
		if !arg.IsString() {
			return nil, TypeMismatch{c}
		}
		e.push(Number(int32(len(arg.Str))))
		return scanText, nil

	case '+', '-', '*', '/', '|', '&', '^', 'm':
		x, y, err := e.popTwoNumbers(c)
		if err != nil {
			return nil, err
		}
		var result int32
		switch c {
		case '+':
			result = x + y
		case '-':
			result = x - y
		case '*':
			result = x * y
		case '/':
			if y == 0 {
				return nil, DivideByZero{c}
			}
			result = x / y
		case '|':
			result = x | y
		case '&':
			result = x & y
		case '^':
			result = x ^ y
		case 'm':
			if y == 0 {
				return nil, DivideByZero{c}
			}
			result = x % y
		}
		e.push(Number(result))
		return scanText, nil

	case '=', '>', '<', 'A', 'O':
		x, y, err := e.popTwoNumbers(c)
		if err != nil {
			return nil, err
		}
		var result bool
		switch c {
		case '=':
			result = x == y
		case '<':
			result = x < y
		case '>':
			result = x > y
		case 'A':
			result = x > 0 && y > 0
		case 'O':
			result = x > 0 || y > 0
		}
		e.push(Number(boolToInt32(result)))
		return scanText, nil

	case '!', '~':
		x, err := e.popNumber(c)
		if err != nil {
			return nil, err
		}
		if c == '!' {
			if x > 0 {
				e.push(Number(0))
			} else {
				e.push(Number(1))
			}
		} else {
			e.push(Number(^x))
		}
		return scanText, nil

	case 'i':
		x, y := e.mparams[0], e.mparams[1]
		if !x.IsNumber() || !y.IsNumber() {
			return nil, TypeMismatch{c}
		}
		if !e.incremented {
			e.mparams[0] = Number(x.Num + 1)
			e.mparams[1] = Number(y.Num + 1)
			e.incremented = true
		}
		return scanText, nil

	case 'd', 'o', 'x', 'X', 's':
		arg, ok := e.pop()
		if !ok {
			return nil, StackUnderflow{c}
		}
		res, err := format(arg, c, formatFlags{})
		if err != nil {
			return nil, err
		}
		e.output = append(e.output, res...)
		return scanText, nil

	case ':', '#', ' ', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var flags formatFlags
		sub := subFlags
		switch {
		case c == ':':
		case c == '#':
			flags.alternate = true
		case c == ' ':
			flags.space = true
		case c == '.':
			sub = subPrecision
		case c >= '0' && c <= '9':
			flags.width = uint16(c - '0')
			sub = subWidth
		}
		return formatPattern(flags, sub), nil

	case '?', ';':
		return scanText, nil

	case 't':
		n, err := e.popNumber(c)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return seekIfElse(0), nil
		}
		return scanText, nil

	case 'e':
		return seekIfEnd(0), nil

	default:
		return nil, UnrecognizedFormatOption{c}
	}
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func pushParam(e *expansion, c byte) (stateFn, error) {
	if c < '1' || c > '9' {
		return nil, InvalidParameterIndex{c}
	}
	e.push(e.mparams[c-'1'])
	return scanText, nil
}

func setVar(e *expansion, c byte) (stateFn, error) {
	arg, ok := e.pop()
	if !ok {
		return nil, StackUnderflow{'P'}
	}
	switch {
	case c >= 'A' && c <= 'Z':
		e.ctx.static[c-'A'] = arg
	case c >= 'a' && c <= 'z':
		e.dvars[c-'a'] = arg
	default:
		return nil, InvalidVariableName{c}
	}
	return scanText, nil
}

func getVar(e *expansion, c byte) (stateFn, error) {
	switch {
	case c >= 'A' && c <= 'Z':
		e.push(e.ctx.static[c-'A'])
	case c >= 'a' && c <= 'z':
		e.push(e.dvars[c-'a'])
	default:
		return nil, InvalidVariableName{c}
	}
	return scanText, nil
}

func charConstant(e *expansion, c byte) (stateFn, error) {
	e.push(Number(int32(c)))
	return charClose, nil
}

func charClose(e *expansion, c byte) (stateFn, error) {
	if c != '\'' {
		return nil, ErrMalformedCharacterConstant
	}
	return scanText, nil
}

// intConstant accumulates the decimal digits of a %{nnn} constant.
// Arithmetic is done in 64 bits so overflow of the eventual int32
// constant can be detected precisely, matching the source format's
// checked-multiply-then-checked-add construction.
func intConstant(acc int64) stateFn {
	return func(e *expansion, c byte) (stateFn, error) {
		if c == '}' {
			e.push(Number(int32(acc)))
			return scanText, nil
		}
		if c < '0' || c > '9' {
			return nil, ErrMalformedIntegerConstant
		}
		next := acc*10 + int64(c-'0')
		if next > int64(math.MaxInt32) {
			return nil, ErrIntegerConstantOverflow
		}
		return intConstant(next), nil
	}
}

// formatPattern accumulates flags/width/precision for a %:... format
// directive, terminating on a d/o/x/X/s conversion.
func formatPattern(flags formatFlags, sub formatSubState) stateFn {
	return func(e *expansion, c byte) (stateFn, error) {
		switch {
		case c == 'd' || c == 'o' || c == 'x' || c == 'X' || c == 's':
			arg, ok := e.pop()
			if !ok {
				return nil, StackUnderflow{c}
			}
			res, err := format(arg, c, flags)
			if err != nil {
				return nil, err
			}
			e.output = append(e.output, res...)
			return scanText, nil

		case sub == subFlags && c == '#':
			flags.alternate = true
			return formatPattern(flags, sub), nil
		case sub == subFlags && c == '-':
			flags.left = true
			return formatPattern(flags, sub), nil
		case sub == subFlags && c == '+':
			flags.sign = true
			return formatPattern(flags, sub), nil
		case sub == subFlags && c == ' ':
			flags.space = true
			return formatPattern(flags, sub), nil
		case sub == subFlags && c >= '0' && c <= '9':
			flags.width = uint16(c - '0')
			return formatPattern(flags, subWidth), nil

		case sub == subWidth && c >= '0' && c <= '9':
			next := uint32(flags.width)*10 + uint32(c-'0')
			if next > 0xFFFF {
				return nil, ErrFormatWidthOverflow
			}
			flags.width = uint16(next)
			return formatPattern(flags, subWidth), nil

		case (sub == subWidth || sub == subFlags) && c == '.':
			return formatPattern(flags, subPrecision), nil

		case sub == subPrecision && c >= '0' && c <= '9':
			next := uint32(flags.precision)*10 + uint32(c-'0')
			if next > 0xFFFF {
				return nil, ErrFormatPrecisionOverflow
			}
			flags.precision = uint16(next)
			flags.hasPrec = true
			return formatPattern(flags, subPrecision), nil

		default:
			return nil, UnrecognizedFormatOption{c}
		}
	}
}

// seekIfElse discards bytes until the matching %e or %;, tracking
// conditional nesting depth. It is entered after a failed %?...%t
// test.
func seekIfElse(level int) stateFn {
	return func(e *expansion, c byte) (stateFn, error) {
		if c == '%' {
			return seekIfElsePercent(level), nil
		}
		return seekIfElse(level), nil
	}
}

func seekIfElsePercent(level int) stateFn {
	return func(e *expansion, c byte) (stateFn, error) {
		switch {
		case c == ';':
			if level == 0 {
				return scanText, nil
			}
			return seekIfElse(level - 1), nil
		case c == 'e' && level == 0:
			return scanText, nil
		case c == '?':
			return seekIfElse(level + 1), nil
		default:
			return seekIfElse(level), nil
		}
	}
}

// seekIfEnd discards bytes until the matching %;, not stopping at
// intermediate %e (entered after completing a then-branch, or
// unconditionally on a bare %e per the format's documented ambiguity).
func seekIfEnd(level int) stateFn {
	return func(e *expansion, c byte) (stateFn, error) {
		if c == '%' {
			return seekIfEndPercent(level), nil
		}
		return seekIfEnd(level), nil
	}
}

func seekIfEndPercent(level int) stateFn {
	return func(e *expansion, c byte) (stateFn, error) {
		switch {
		case c == ';':
			if level == 0 {
				return scanText, nil
			}
			return seekIfEnd(level - 1), nil
		case c == '?':
			return seekIfEnd(level + 1), nil
		default:
			return seekIfEnd(level), nil
		}
	}
}
