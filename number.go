package lazyjson

import (
	"errors"
	"strconv"
)

// parseNumber implements the number recogniser of §4.5. It walks the
// grammar
//
//	number = [ '-' ] int [ frac ] [ exp ]
//	int    = '0' | digit1-9 digit*
//	frac   = '.' digit digit*
//	exp    = ('e'|'E') [ '+'|'-' ] digit digit*
//
// terminating cleanly at EOF, whitespace, a structural byte, or a value
// separator, and failing on any other byte that cannot extend the grammar.
// Grounded on the integer/float fallback in parse_number_amd64.go's portable
// GOLANG_NUMBER_PARSING path (strconv.Atoi, then strconv.ParseFloat).
func (h *Handle) parseNumber() error {
	if err := h.src.SeekAbsolute(h.start); err != nil {
		return ioError(err)
	}

	hasFrac := false
	hasExp := false

	// Optional leading '-'.
	b, ok, err := h.src.Peek()
	if err != nil {
		return err
	}
	if ok && b == '-' {
		if _, err := h.src.Read(1, true); err != nil {
			return err
		}
	}

	// Integer part: '0' alone, or a non-zero digit followed by any digits.
	b, ok, err = h.src.Peek()
	if err != nil {
		return err
	}
	if !ok {
		return syntaxErrorf(ErrUnexpectedEOF, h.src.Tell(), "expected a digit")
	}
	switch {
	case b == '0':
		if _, err := h.src.Read(1, true); err != nil {
			return err
		}
		// A leading zero does not absorb further digits (§9, open
		// question): a following digit is not consumed here, and the
		// terminator check below rejects it, so "01" fails.
	case isDigit(b):
		if err := consumeDigitRun(h.src); err != nil {
			return err
		}
	default:
		return syntaxErrorf(ErrInvalidNumber, h.src.Tell(), "expected a digit, got %q", b)
	}

	// Optional fractional part.
	b, ok, err = h.src.Peek()
	if err != nil {
		return err
	}
	if ok && b == '.' {
		if _, err := h.src.Read(1, true); err != nil {
			return err
		}
		nb, ok, err := h.src.Peek()
		if err != nil {
			return err
		}
		if !ok || !isDigit(nb) {
			return syntaxErrorf(ErrInvalidNumber, h.src.Tell(), "expected a digit after '.'")
		}
		if err := consumeDigitRun(h.src); err != nil {
			return err
		}
		hasFrac = true
	}

	// Optional exponent.
	b, ok, err = h.src.Peek()
	if err != nil {
		return err
	}
	if ok && (b == 'e' || b == 'E') {
		if _, err := h.src.Read(1, true); err != nil {
			return err
		}
		sb, ok, err := h.src.Peek()
		if err != nil {
			return err
		}
		if ok && (sb == '+' || sb == '-') {
			if _, err := h.src.Read(1, true); err != nil {
				return err
			}
		}
		nb, ok, err := h.src.Peek()
		if err != nil {
			return err
		}
		if !ok || !isDigit(nb) {
			return syntaxErrorf(ErrInvalidNumber, h.src.Tell(), "expected a digit in exponent")
		}
		if err := consumeDigitRun(h.src); err != nil {
			return err
		}
		hasExp = true
	}

	// Whatever remains must be a legal terminator (§4.5: "a byte that is
	// invalid for the current grammar position but would end the number
	// terminates it; anything else fails").
	tb, ok, err := h.src.Peek()
	if err != nil {
		return err
	}
	if ok && !isContainerTerminator(tb) {
		return syntaxErrorf(ErrInvalidNumber, h.src.Tell(), "unexpected byte %q after number", tb)
	}

	h.end = h.src.Tell()
	if err := h.src.SeekAbsolute(h.start); err != nil {
		return ioError(err)
	}
	text, err := h.src.Read(int(h.end-h.start), true)
	if err != nil {
		return err
	}
	h.numText = string(text)

	if err := h.decodeNumber(hasFrac, hasExp); err != nil {
		return err
	}
	return nil
}

// consumeDigitRun reads bytes from src while they are ASCII digits, cleanly
// stopping at EOF mid-run (§4.5: "On EOF mid-digit-run, terminate cleanly").
func consumeDigitRun(src Source) error {
	for {
		b, ok, err := src.Peek()
		if err != nil {
			return err
		}
		if !ok || !isDigit(b) {
			return nil
		}
		if _, err := src.Read(1, true); err != nil {
			return err
		}
	}
}

// decodeNumber interprets the raw text already stored in h.numText as an
// integer (when it has no fraction or exponent and fits int64) or else as a
// float64, per §4.5's decoding rules.
func (h *Handle) decodeNumber(hasFrac, hasExp bool) error {
	if !hasFrac && !hasExp {
		if n, err := strconv.ParseInt(h.numText, 10, 64); err == nil {
			h.numIsInt = true
			h.numInt = n
			return nil
		}
		// Out of int64 range: fall through to float, same as the
		// teacher's stage2_build_tape integer-overflow fallback.
	}
	f, err := strconv.ParseFloat(h.numText, 64)
	if err != nil {
		// A magnitude beyond float64's range (e.g. "1e1000") reports
		// ErrRange alongside the correctly saturated ±Inf value (§4.5:
		// "values that exceed the float range become +∞ or −∞ ... both
		// are accepted outputs"); anything else is a recogniser bug, since
		// it only admits bytes that form a valid number grammar.
		var numErr *strconv.NumError
		if !(errors.As(err, &numErr) && numErr.Err == strconv.ErrRange) {
			return logicErrorf("raw text %q accepted by recogniser but rejected by ParseFloat: %v", h.numText, err)
		}
	}
	h.numIsInt = false
	h.numFloat = f
	return nil
}

// RawText returns the number's raw textual form, useful when the decoded
// value overflows the platform's floating range (§6).
func (h *Handle) RawText() (string, error) {
	if h.typ != Number {
		return "", logicErrorf("RawText called on a %v handle", h.typ)
	}
	if !h.Loaded() {
		if err := h.parseNumber(); err != nil {
			return "", err
		}
	}
	return h.numText, nil
}

// Int64 returns the number as an int64. If the raw text was decoded as a
// float (because it carried a fraction/exponent, or overflowed int64), the
// float value is truncated towards zero.
func (h *Handle) Int64() (int64, error) {
	if h.typ != Number {
		return 0, logicErrorf("Int64 called on a %v handle", h.typ)
	}
	if !h.Loaded() {
		if err := h.parseNumber(); err != nil {
			return 0, err
		}
	}
	if h.numIsInt {
		return h.numInt, nil
	}
	return int64(h.numFloat), nil
}

// Float64 returns the number as a float64. Values whose raw text exceeds
// the float64 range decode to +Inf or -Inf, both of which are accepted
// outputs per §4.5.
func (h *Handle) Float64() (float64, error) {
	if h.typ != Number {
		return 0, logicErrorf("Float64 called on a %v handle", h.typ)
	}
	if !h.Loaded() {
		if err := h.parseNumber(); err != nil {
			return 0, err
		}
	}
	if h.numIsInt {
		return float64(h.numInt), nil
	}
	return h.numFloat, nil
}

// IsInt reports whether the decoded numeric value is held as an integer
// rather than a float.
func (h *Handle) IsInt() (bool, error) {
	if h.typ != Number {
		return false, logicErrorf("IsInt called on a %v handle", h.typ)
	}
	if !h.Loaded() {
		if err := h.parseNumber(); err != nil {
			return false, err
		}
	}
	return h.numIsInt, nil
}

// numberValue returns the number as an interface{} holding either int64 or
// float64, for use by the decoder façade (§4.9).
func (h *Handle) numberValue() (interface{}, error) {
	if h.numIsInt {
		return h.numInt, nil
	}
	return h.numFloat, nil
}
