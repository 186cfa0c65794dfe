package lazyjson

import (
	"unicode/utf16"
	"unicode/utf8"
)

// isJSONWhitespace reports whether b is one of the four JSON whitespace
// bytes (§4.2 step 2): space, tab, CR, LF.
func isJSONWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// isDigit reports whether b is an ASCII digit.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isHexDigit reports whether b is a hex digit, per §4.6.1.
func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// skipWhitespace consumes bytes from src while they are JSON whitespace.
func skipWhitespace(src Source) error {
	for {
		b, ok, err := src.Peek()
		if err != nil {
			return err
		}
		if !ok || !isJSONWhitespace(b) {
			return nil
		}
		if _, err := src.Read(1, true); err != nil {
			return err
		}
	}
}

// readByte reads and returns exactly one byte, failing with ErrUnexpectedEOF
// at the stream's end.
func readByte(src Source) (byte, error) {
	b, err := src.Read(1, true)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// isContainerTerminator reports whether b is a byte that legally ends a bare
// token without being consumed by it: a structural character, whitespace, or
// a value separator. Used by the number recogniser (§4.5) to decide whether
// an otherwise-invalid next byte is actually a legal terminator.
func isContainerTerminator(b byte) bool {
	switch b {
	case ',', ']', '}', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// decodeHex4 reads exactly four hex digits from src and returns the 16-bit
// value they encode, per §4.6.1.
func decodeHex4(src Source) (uint16, error) {
	digits, err := src.Read(4, true)
	if err != nil {
		return 0, err
	}
	var v uint16
	for _, d := range digits {
		var nib uint16
		switch {
		case d >= '0' && d <= '9':
			nib = uint16(d - '0')
		case d >= 'a' && d <= 'f':
			nib = uint16(d-'a') + 10
		case d >= 'A' && d <= 'F':
			nib = uint16(d-'A') + 10
		default:
			return 0, syntaxErrorf(ErrInvalidString, src.Tell(), "invalid unicode escape digit %q", d)
		}
		v = v<<4 | nib
	}
	return v, nil
}

// decodeUnicodeEscape implements §4.6.1: it has just consumed "\u" and reads
// the four hex digits (and, for a high surrogate, a following "\uXXXX" low
// surrogate), appending the decoded code point's UTF-8 encoding to dst.
//
// Grounded on the surrogate-pairing logic of Go's own encoding/json
// unquoteBytes (see 00f893fa_Go-zh-go.old__src-encoding-json-decode.go.go in
// the retrieval pack), but stricter: stdlib substitutes unicode.
// ReplacementChar for an unpaired or invalid surrogate, while §4.6.1 here
// requires a hard failure ("invalid high surrogate" / orphan low surrogate).
func decodeUnicodeEscape(src Source, dst []byte) ([]byte, error) {
	u, err := decodeHex4(src)
	if err != nil {
		return nil, err
	}
	r := rune(u)

	if !utf16.IsSurrogate(r) {
		return utf8.AppendRune(dst, r), nil
	}

	if u >= 0xDC00 {
		// Lone low surrogate.
		return nil, syntaxErrorf(ErrInvalidString, src.Tell(), "invalid high surrogate")
	}

	// High surrogate: must be followed by "\u" and a low surrogate.
	marker, err := src.Read(2, true)
	if err != nil {
		return nil, err
	}
	if marker[0] != '\\' || marker[1] != 'u' {
		return nil, syntaxErrorf(ErrInvalidString, src.Tell(), "high surrogate not followed by unicode escape")
	}
	u2, err := decodeHex4(src)
	if err != nil {
		return nil, err
	}
	r2 := rune(u2)
	dec := utf16.DecodeRune(r, r2)
	if dec == utf8.RuneError {
		return nil, syntaxErrorf(ErrInvalidString, src.Tell(), "invalid low surrogate")
	}
	return utf8.AppendRune(dst, dec), nil
}

// decodeSimpleEscape maps a one-byte escape (the byte following a bare `\`,
// excluding `u`) to its decoded byte, per §4.6 step 2.
func decodeSimpleEscape(b byte) (rune, bool) {
	switch b {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case '/':
		return '/', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}
