package lazyjson

// arrayState holds the container-walker state private to an Array handle
// (§3: "ordered mapping from element index -> byte offset", optional
// total_elements count). Grounded on the teacher's Array/Elements pair in
// parsed_array.go and parsed_object.go, adapted from tape offsets to byte
// offsets in the underlying Source.
type arrayState struct {
	offsets []int64 // cache[i] = byte offset of element i; nil unless use_cache
	count   int     // valid iff counted is true
	counted bool
}

// ArrayIter walks an Array handle's elements in source order (§4.7). Like
// StringIter it is a single-pass, non-restartable cursor; call Elements
// again on the same handle for a fresh walk.
type ArrayIter struct {
	h       *Handle
	pos     int64
	index   int
	started bool
	done    bool
}

// Elements returns a fresh iterator over this array's children, in source
// order.
func (h *Handle) Elements() *ArrayIter {
	return &ArrayIter{h: h, pos: h.start}
}

// parseArrayFull drains the array's iterator to completion so that Parse
// can advance the cursor to end_offset and, if use_cache is set, populate
// the full offset cache.
func (h *Handle) parseArrayFull() error {
	it := h.Elements()
	for {
		_, child, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := child.Parse(); err != nil {
			return err
		}
	}
}

// Next yields the next (index, child) pair, or ok=false once the array is
// exhausted. Grounded on §4.7's walk algorithm: the offset of each child is
// recorded (and cached, if enabled) before the child is dispatched; the
// walker then re-seeks to the child's start and forces it to parse, reads
// the following ',' or ']', and only then hands the child to the caller.
// The position after the separator is kept in the iterator, so the caller
// may reposition the cursor freely between yields (§4.7 step 2c).
func (it *ArrayIter) Next() (index int, child *Handle, ok bool, err error) {
	if it.done {
		return 0, nil, false, nil
	}
	src := it.h.src

	if !it.started {
		it.started = true
		if err := src.SeekAbsolute(it.pos); err != nil {
			return 0, nil, false, ioError(err)
		}
		b, err := readByte(src)
		if err != nil {
			return 0, nil, false, err
		}
		if b != '[' {
			return 0, nil, false, logicErrorf("array handle does not start with '['")
		}
		if err := skipWhitespace(src); err != nil {
			return 0, nil, false, err
		}
		nb, ok, err := src.Peek()
		if err != nil {
			return 0, nil, false, err
		}
		if ok && nb == ']' {
			if _, err := src.Read(1, true); err != nil {
				return 0, nil, false, err
			}
			it.finish(src, 0)
			return 0, nil, false, nil
		}
		it.pos = src.Tell()
	}

	if err := src.SeekAbsolute(it.pos); err != nil {
		return 0, nil, false, ioError(err)
	}

	offset := src.Tell()
	it.h.ensureArrayState()
	idx := it.index
	it.index++
	if it.h.cache {
		// Re-iterations after a partial walk (§5: "subsequent
		// re-iteration starts afresh") write into the same cache slots
		// by index rather than appending, so a repeated walk can't
		// duplicate entries.
		for len(it.h.array.offsets) <= idx {
			it.h.array.offsets = append(it.h.array.offsets, -1)
		}
		it.h.array.offsets[idx] = offset
	}

	elem, err := Load(src, it.h.cache)
	if err != nil {
		return 0, nil, false, err
	}

	if err := src.SeekAbsolute(elem.start); err != nil {
		return 0, nil, false, ioError(err)
	}
	if err := elem.Parse(); err != nil {
		return 0, nil, false, err
	}

	if err := skipWhitespace(src); err != nil {
		return 0, nil, false, err
	}
	b, err := readByte(src)
	if err != nil {
		return 0, nil, false, err
	}
	switch b {
	case ',':
		if err := skipWhitespace(src); err != nil {
			return 0, nil, false, err
		}
		nb, ok, err := src.Peek()
		if err != nil {
			return 0, nil, false, err
		}
		if ok && nb == ']' {
			return 0, nil, false, syntaxErrorf(ErrInvalidContainer, src.Tell(), "trailing comma")
		}
		it.pos = src.Tell()
	case ']':
		it.finish(src, idx+1)
	default:
		return 0, nil, false, syntaxErrorf(ErrInvalidContainer, src.Tell()-1, "expected ',' or ']', got %q", b)
	}

	return idx, elem, true, nil
}

func (it *ArrayIter) finish(src Source, count int) {
	it.done = true
	if !it.h.Loaded() {
		it.h.end = src.Tell()
	}
	it.h.ensureArrayState()
	it.h.array.count = count
	it.h.array.counted = true
}

func (h *Handle) ensureArrayState() {
	if h.array == nil {
		h.array = &arrayState{}
	}
}

// arrayLength returns the number of elements in the array, walking it fully
// if necessary.
func (h *Handle) arrayLength() (int, error) {
	if h.array != nil && h.array.counted {
		return h.array.count, nil
	}
	if err := h.parseArrayFull(); err != nil {
		return 0, err
	}
	return h.array.count, nil
}

// At returns the child at index i, or ok=false if the array has fewer than
// i+1 elements. When use_cache is enabled and the offset for i is already
// known, this seeks directly to it without revisiting earlier children
// (§4.7, "Cache-accelerated paths").
func (h *Handle) At(i int) (child *Handle, ok bool, err error) {
	if h.typ != Array {
		return nil, false, logicErrorf("At called on a %v handle", h.typ)
	}
	if i < 0 {
		return nil, false, nil
	}
	if h.cache && h.array != nil && i < len(h.array.offsets) && h.array.offsets[i] >= 0 {
		if err := h.src.SeekAbsolute(h.array.offsets[i]); err != nil {
			return nil, false, ioError(err)
		}
		child, err = Load(h.src, h.cache)
		if err != nil {
			return nil, false, err
		}
		return child, true, nil
	}

	it := h.Elements()
	for {
		idx, elem, more, err := it.Next()
		if err != nil {
			return nil, false, err
		}
		if !more {
			return nil, false, nil
		}
		if idx == i {
			return elem, true, nil
		}
	}
}

// Has reports whether index i is present in the array.
func (h *Handle) Has(i int) (bool, error) {
	_, ok, err := h.At(i)
	return ok, err
}

// All eagerly decodes every element of the array via the decoder façade
// (§4.9), returning them in source order. Supplemented convenience built on
// Elements rather than reimplementing traversal (see SPEC_FULL.md;
// grounded on Array.Interface in parsed_array.go).
func (h *Handle) All() ([]interface{}, error) {
	return h.decodeElements(false)
}

// decodeElements backs All and the decoder façade's Array case, threading
// the associative flag through to every element so a nested Object honours
// the same map-vs-record shape as the root call (§4.9: the flag selects the
// shape recursively, not just at the top level).
func (h *Handle) decodeElements(associative bool) ([]interface{}, error) {
	if h.typ != Array {
		return nil, logicErrorf("All called on a %v handle", h.typ)
	}
	it := h.Elements()
	var out []interface{}
	for {
		_, elem, more, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !more {
			return out, nil
		}
		v, err := elem.Decode(associative)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}
