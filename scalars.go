package lazyjson

// parseNull implements §4.3: reads exactly four bytes and requires them to
// spell "null".
func (h *Handle) parseNull() error {
	if err := h.src.SeekAbsolute(h.start); err != nil {
		return ioError(err)
	}
	b, err := h.src.Read(4, true)
	if err != nil {
		return err
	}
	if string(b) != "null" {
		return syntaxErrorf(ErrInvalidLiteral, h.start, "expected \"null\", got %q", b)
	}
	h.end = h.start + 4
	return nil
}

// parseBoolean implements §4.4: reads "true" or "false" depending on the
// first byte and records the decoded truth value.
func (h *Handle) parseBoolean() error {
	if err := h.src.SeekAbsolute(h.start); err != nil {
		return ioError(err)
	}
	first, err := readByte(h.src)
	if err != nil {
		return err
	}
	switch first {
	case 't':
		rest, err := h.src.Read(3, true)
		if err != nil {
			return err
		}
		if string(rest) != "rue" {
			return syntaxErrorf(ErrInvalidLiteral, h.start, "expected \"true\", got %q", append([]byte{first}, rest...))
		}
		h.boolValue = true
	case 'f':
		rest, err := h.src.Read(4, true)
		if err != nil {
			return err
		}
		if string(rest) != "alse" {
			return syntaxErrorf(ErrInvalidLiteral, h.start, "expected \"false\", got %q", append([]byte{first}, rest...))
		}
		h.boolValue = false
	default:
		return logicErrorf("parseBoolean dispatched on non-bool byte %q", first)
	}
	h.end = h.src.Tell()
	return nil
}

// Bool returns the decoded truth value of a Boolean handle, parsing it if
// necessary.
func (h *Handle) Bool() (bool, error) {
	if h.typ != Boolean {
		return false, logicErrorf("Bool called on a %v handle", h.typ)
	}
	if !h.Loaded() {
		if err := h.parseBoolean(); err != nil {
			return false, err
		}
	}
	return h.boolValue, nil
}
