package lazyjson

import "strconv"

// objectState holds the container-walker state private to an Object handle
// (§3: "mapping from property name -> byte offset", optional
// total_properties count). The *last* occurrence of a duplicated key wins
// in the cache (§4.8 point 4, §9 "Open questions"), which falls out
// naturally here since each write simply overwrites the map entry.
type objectState struct {
	offsets map[string]int64
	count   int
	counted bool
}

// ObjectIter walks an Object handle's properties in source order (§4.8).
// Like ArrayIter, it is single-pass; call Properties again for a fresh
// walk.
type ObjectIter struct {
	h       *Handle
	pos     int64
	index   int
	started bool
	done    bool
}

// Properties returns a fresh iterator over this object's (key, value)
// pairs, in source order.
func (h *Handle) Properties() *ObjectIter {
	return &ObjectIter{h: h, pos: h.start}
}

func (h *Handle) ensureObjectState() {
	if h.object == nil {
		h.object = &objectState{offsets: map[string]int64{}}
	}
}

// parseObjectFull drains the object's iterator to completion so Parse can
// advance the cursor to end_offset and populate the cache, if enabled.
func (h *Handle) parseObjectFull() error {
	it := h.Properties()
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

// Next yields the next (key, value) pair, or ok=false once the object is
// exhausted. Grounded on §4.8's walk algorithm, itself a variant of
// ArrayIter.Next: each property's key is dispatched and must be a String
// (§4.8 point 2), its decoded value becomes the cache key keyed to the
// *value's* offset (point 4, "not of the key"), and the walker forces the
// value to parse before checking for ',' or '}' so the caller can
// reposition the cursor freely between yields.
func (it *ObjectIter) Next() (key string, value *Handle, ok bool, err error) {
	if it.done {
		return "", nil, false, nil
	}
	src := it.h.src

	if !it.started {
		it.started = true
		if err := src.SeekAbsolute(it.pos); err != nil {
			return "", nil, false, ioError(err)
		}
		b, err := readByte(src)
		if err != nil {
			return "", nil, false, err
		}
		if b != '{' {
			return "", nil, false, logicErrorf("object handle does not start with '{'")
		}
		if err := skipWhitespace(src); err != nil {
			return "", nil, false, err
		}
		nb, ok, err := src.Peek()
		if err != nil {
			return "", nil, false, err
		}
		if ok && nb == '}' {
			if _, err := src.Read(1, true); err != nil {
				return "", nil, false, err
			}
			it.finish(src, 0)
			return "", nil, false, nil
		}
		it.pos = src.Tell()
	}

	if err := src.SeekAbsolute(it.pos); err != nil {
		return "", nil, false, ioError(err)
	}

	keyHandle, err := Load(src, false)
	if err != nil {
		return "", nil, false, err
	}
	if keyHandle.Type() != String {
		return "", nil, false, syntaxErrorf(ErrInvalidContainer, keyHandle.start, "non-string key")
	}
	if err := keyHandle.Parse(); err != nil {
		return "", nil, false, err
	}
	name, err := keyHandle.StringValue()
	if err != nil {
		return "", nil, false, err
	}

	if err := skipWhitespace(src); err != nil {
		return "", nil, false, err
	}
	cb, err := readByte(src)
	if err != nil {
		return "", nil, false, err
	}
	if cb != ':' {
		return "", nil, false, syntaxErrorf(ErrInvalidContainer, src.Tell()-1, "expected ':', got %q", cb)
	}
	if err := skipWhitespace(src); err != nil {
		return "", nil, false, err
	}

	valueOffset := src.Tell()
	valueHandle, err := Load(src, it.h.cache)
	if err != nil {
		return "", nil, false, err
	}

	it.h.ensureObjectState()
	if it.h.cache {
		it.h.object.offsets[name] = valueOffset
	}
	it.index++

	if err := valueHandle.Parse(); err != nil {
		return "", nil, false, err
	}

	if err := skipWhitespace(src); err != nil {
		return "", nil, false, err
	}
	b, err := readByte(src)
	if err != nil {
		return "", nil, false, err
	}
	switch b {
	case ',':
		if err := skipWhitespace(src); err != nil {
			return "", nil, false, err
		}
		nb, ok, err := src.Peek()
		if err != nil {
			return "", nil, false, err
		}
		if ok && nb == '}' {
			return "", nil, false, syntaxErrorf(ErrInvalidContainer, src.Tell(), "trailing comma")
		}
		it.pos = src.Tell()
	case '}':
		it.finish(src, it.index)
	default:
		return "", nil, false, syntaxErrorf(ErrInvalidContainer, src.Tell()-1, "expected ',' or '}', got %q", b)
	}

	return name, valueHandle, true, nil
}

func (it *ObjectIter) finish(src Source, count int) {
	it.done = true
	if !it.h.Loaded() {
		it.h.end = src.Tell()
	}
	it.h.ensureObjectState()
	it.h.object.count = count
	it.h.object.counted = true
}

// objectLength returns the number of key/value pairs in the object
// (counting every occurrence of a duplicated key), walking it fully if
// necessary.
func (h *Handle) objectLength() (int, error) {
	if h.object != nil && h.object.counted {
		return h.object.count, nil
	}
	if err := h.parseObjectFull(); err != nil {
		return 0, err
	}
	return h.object.count, nil
}

// Property returns the value handle for key, or ok=false if the object has
// no such key. When use_cache is set and the key's offset is already
// cached, this seeks directly to it (§4.8 point 5), and a fully walked
// cached object answers from its cache alone; otherwise it walks the object
// from its start until the key is found or the object ends.
func (h *Handle) Property(key string) (value *Handle, ok bool, err error) {
	if h.typ != Object {
		return nil, false, logicErrorf("Property called on a %v handle", h.typ)
	}
	if h.cache && h.object != nil {
		if off, found := h.object.offsets[key]; found {
			if err := h.src.SeekAbsolute(off); err != nil {
				return nil, false, ioError(err)
			}
			value, err = Load(h.src, h.cache)
			if err != nil {
				return nil, false, err
			}
			return value, true, nil
		}
		if h.object.counted {
			// §4.8 point 6: a fully-walked object's cache is exhaustive.
			return nil, false, nil
		}
	}

	it := h.Properties()
	for {
		name, elem, more, err := it.Next()
		if err != nil {
			return nil, false, err
		}
		if !more {
			return nil, false, nil
		}
		if name == key {
			return elem, true, nil
		}
	}
}

// HasKey reports whether key is present in the object.
func (h *Handle) HasKey(key string) (bool, error) {
	_, ok, err := h.Property(key)
	return ok, err
}

// ForEach walks every property of the object, calling fn with each
// (key, value) pair in source order. Stops and returns fn's error if it
// returns one. Supplemented convenience generalizing the teacher's
// Object.ForEach (parsed_object.go); see SPEC_FULL.md.
func (h *Handle) ForEach(fn func(key string, value *Handle) error) error {
	if h.typ != Object {
		return logicErrorf("ForEach called on a %v handle", h.typ)
	}
	it := h.Properties()
	for {
		name, elem, more, err := it.Next()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := fn(name, elem); err != nil {
			return err
		}
	}
}

// Get resolves a path of object keys and array indices, one segment per
// argument (a segment is never split on '/'), chaining
// Property and At lookups (SPEC_FULL.md; generalizes the teacher's
// Object.FindPath in parsed_object.go, which only chains object keys, to
// also step through arrays). A numeric path segment is interpreted as an
// array index when the current handle is an Array and as an object key
// otherwise.
func (h *Handle) Get(path ...string) (*Handle, bool, error) {
	cur := h
	for _, seg := range path {
		switch cur.Type() {
		case Object:
			next, ok, err := cur.Property(seg)
			if err != nil || !ok {
				return nil, false, err
			}
			cur = next
		case Array:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, false, nil
			}
			next, ok, err := cur.At(idx)
			if err != nil || !ok {
				return nil, false, err
			}
			cur = next
		default:
			return nil, false, nil
		}
	}
	return cur, true, nil
}

// Set always fails: Object (and Array) handles are read-only (§4.8 point
// 7).
func (h *Handle) Set(key string, value *Handle) error {
	return ErrReadOnly
}

// Remove always fails: Object handles are read-only (§4.8 point 7).
func (h *Handle) Remove(key string) error {
	return ErrReadOnly
}

// AllProperties eagerly decodes every property of the object via the
// decoder façade (§4.9) into an ordered slice of key/value pairs,
// preserving duplicate keys and source order. Grounded on Object.Map in
// parsed_object.go, generalized to preserve order/duplicates the way
// ForEach does rather than collapsing into a map.
func (h *Handle) AllProperties() ([]KeyValue, error) {
	if h.typ != Object {
		return nil, logicErrorf("AllProperties called on a %v handle", h.typ)
	}
	var out []KeyValue
	err := h.ForEach(func(key string, value *Handle) error {
		v, err := value.Decode(false)
		if err != nil {
			return err
		}
		out = append(out, KeyValue{Key: key, Value: v})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// KeyValue is one decoded property of an Object, as returned by AllProperties and by
// Decode's record-style shape (§4.9).
type KeyValue struct {
	Key   string
	Value interface{}
}
