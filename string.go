package lazyjson

import "unicode/utf8"

// StringIter is the lazy, non-restartable character stream of §4.6: each
// call to Next decodes and returns the next UTF-8 character of a JSON
// string, handling escapes and surrogate pairs as it goes. A String
// handle's end offset is fixed the first time its iterator reaches the
// closing quote (§4.6 step 2: "on the first end-of-stream step, set
// end_offset").
//
// The caller is free to reposition the source cursor between calls to
// Next; each step re-seeks to its own tracked offset first (§4.6 step 3),
// so two StringIters over different handles can be advanced in any
// interleaving.
type StringIter struct {
	h       *Handle
	pos     int64 // next byte to read, absolute
	started bool
	done    bool
}

// Characters returns a fresh iterator over this string's decoded
// characters, starting from the handle's start offset regardless of
// whether the handle (or a previous iterator over it) has already been
// parsed (§9: "the parent handle must always be able to produce a fresh
// iterator").
func (h *Handle) Characters() *StringIter {
	return &StringIter{h: h, pos: h.start}
}

// Next decodes and returns the next character of the string. ok is false
// once the closing quote has been consumed; err is non-nil on malformed
// input.
func (it *StringIter) Next() (r rune, ok bool, err error) {
	if it.done {
		return 0, false, nil
	}
	src := it.h.src
	if err := src.SeekAbsolute(it.pos); err != nil {
		return 0, false, ioError(err)
	}

	if !it.started {
		it.started = true
		b, err := readByte(src)
		if err != nil {
			return 0, false, err
		}
		if b != '"' {
			return 0, false, logicErrorf("string handle does not start with '\"'")
		}
	}

	b, err := readByte(src)
	if err != nil {
		return 0, false, err
	}

	switch {
	case b < 0x20:
		return 0, false, syntaxErrorf(ErrInvalidString, src.Tell()-1, "control byte %#02x in string", b)
	case b == '"':
		it.done = true
		if !it.h.Loaded() {
			it.h.end = src.Tell()
		}
		it.pos = src.Tell()
		return 0, false, nil
	case b == '\\':
		eb, err := readByte(src)
		if err != nil {
			return 0, false, err
		}
		if eb == 'u' {
			decoded, err := decodeUnicodeEscape(src, nil)
			if err != nil {
				return 0, false, err
			}
			r, _ = utf8.DecodeRune(decoded)
			it.pos = src.Tell()
			return r, true, nil
		}
		dr, okEsc := decodeSimpleEscape(eb)
		if !okEsc {
			return 0, false, syntaxErrorf(ErrInvalidString, src.Tell()-1, "invalid escape %q", eb)
		}
		it.pos = src.Tell()
		return dr, true, nil
	case b < utf8.RuneSelf:
		it.pos = src.Tell()
		return rune(b), true, nil
	default:
		// The source hands back raw bytes (§4.6 step 2: "the byte, and
		// any continuation bytes ... pass through unmodified"); reading
		// one rune per Next call means pulling in the rest of this
		// lead byte's multi-byte sequence here.
		seq := make([]byte, 1, utf8.UTFMax)
		seq[0] = b
		if n := utf8SeqLen(b); n > 1 {
			more, err := src.Read(n-1, true)
			if err != nil {
				return 0, false, err
			}
			seq = append(seq, more...)
		}
		r, _ := utf8.DecodeRune(seq)
		it.pos = src.Tell()
		return r, true, nil
	}
}

// utf8SeqLen returns the byte length of a UTF-8 sequence given its lead
// byte; unicode/utf8 has no exported equivalent of this lookup.
func utf8SeqLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	}
	return 1
}

// parseStringFull drains the string's character stream without
// materialising it, used by Parse to advance the cursor to end_offset.
func (h *Handle) parseStringFull() error {
	it := h.Characters()
	for {
		_, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// StringValue returns the fully decoded string, the concatenation of the
// streamed characters (§4.9).
func (h *Handle) StringValue() (string, error) {
	if h.typ != String {
		return "", logicErrorf("StringValue called on a %v handle", h.typ)
	}
	it := h.Characters()
	var buf []byte
	for {
		r, ok, err := it.Next()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf), nil
}
