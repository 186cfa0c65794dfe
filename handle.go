package lazyjson

import "fmt"

// Type is the tag of a JSON value handle, mirroring the six JSON value
// types of §3. Modeled as a tagged sum rather than a class hierarchy per
// §9: variant-specific behaviour lives in number.go/string.go/array.go/
// object.go as free functions and methods on Handle, not as virtual
// dispatch.
type Type uint8

const (
	// TypeNone marks a Handle that was never successfully dispatched.
	TypeNone Type = iota
	Null
	Boolean
	Number
	String
	Array
	Object
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "(none)"
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "(invalid)"
}

// Handle is a JSON value located at a specific byte offset in a Source
// (§3, "Value handle"). It borrows its Source rather than owning it: many
// handles over the same Source share its cursor and so must not be
// navigated from more than one goroutine at a time (§1, Non-goals; §5).
//
// A Handle's start offset is fixed at creation and its end offset, once
// set, never changes (§3, "Invariants"). A Handle is loaded iff its end
// offset has been set.
type Handle struct {
	src   Source
	typ   Type
	start int64
	end   int64 // -1 until loaded
	cache bool

	// Scalar payload, set once on successful parse.
	boolValue bool
	numText   string
	numInt    int64
	numFloat  float64
	numIsInt  bool

	// Container payload, present only for Array/Object handles.
	array  *arrayState
	object *objectState
}

// notLoaded is the sentinel value of Handle.end before a successful parse.
const notLoaded = -1

// Type reports the handle's variant.
func (h *Handle) Type() Type { return h.typ }

// StartOffset returns the absolute byte offset of the value's first byte.
func (h *Handle) StartOffset() int64 { return h.start }

// EndOffset returns the absolute byte offset one past the value's last
// byte. It is only meaningful once Loaded reports true.
func (h *Handle) EndOffset() int64 { return h.end }

// Loaded reports whether the handle has been fully recognised, i.e.
// whether its end offset has been set (§3, "A handle is loaded iff
// end_offset is set").
func (h *Handle) Loaded() bool { return h.end != notLoaded }

// Length returns the number of children of an Array or Object handle
// (§6: Array.length(), Object.length()), walking the container fully if it
// has not been already.
func (h *Handle) Length() (int, error) {
	switch h.typ {
	case Array:
		return h.arrayLength()
	case Object:
		return h.objectLength()
	}
	return 0, logicErrorf("Length called on a %v handle", h.typ)
}

// RawBytes returns the exact source bytes spanning [StartOffset, EndOffset),
// parsing the handle first if it is not loaded yet. This is a supplemented
// convenience (see SPEC_FULL.md) generalizing the teacher's raw-slice
// accessors (ParsedJson.stringByteAt, Array.MarshalJSONBuffer). Number's
// RawText (§4.5) does not use it: it returns the text stored by parseNumber.
func (h *Handle) RawBytes() ([]byte, error) {
	if !h.Loaded() {
		if err := h.Parse(); err != nil {
			return nil, err
		}
	}
	if err := h.src.SeekAbsolute(h.start); err != nil {
		return nil, ioError(err)
	}
	n := int(h.end - h.start)
	return h.src.Read(n, true)
}

// Load is the entry point of §4.2: it inspects the first non-whitespace
// byte at the Source's current cursor and returns a Handle of the
// corresponding variant. The handle is not parsed yet; call Parse or
// Decode to recognise it fully.
//
// use_cache controls whether this handle, and any container descendants it
// produces, memoise child offsets for accelerated random access (§3, §4.7,
// §4.8).
func Load(src Source, useCache bool) (*Handle, error) {
	if src == nil {
		return nil, ErrSourceUnusable
	}
	startTell := src.Tell()

	// §4.2 step 1: a source with nothing at all at its very first call (the
	// root load, cursor still at its start) fails distinctly as "invalid
	// source". This check only applies at the root: a container walker
	// dispatching a later child calls Load too, and running dry there is
	// "unexpected end of input" below instead, since the source itself was
	// perfectly usable up to this point.
	if startTell == 0 {
		if _, ok, err := src.Peek(); err != nil {
			return nil, err
		} else if !ok {
			return nil, ErrSourceUnusable
		}
	}

	if err := skipWhitespace(src); err != nil {
		return nil, err
	}

	first, ok, err := src.Peek()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, syntaxErrorf(ErrUnexpectedEOF, src.Tell(), "expected a value")
	}

	typ, err := dispatchType(first, src.Tell())
	if err != nil {
		return nil, err
	}

	h := &Handle{
		src:   src,
		typ:   typ,
		start: src.Tell(),
		end:   notLoaded,
		cache: useCache,
	}
	return h, nil
}

// dispatchType maps the first byte of a value to its Type, per §4.2 step 5.
func dispatchType(first byte, pos int64) (Type, error) {
	switch {
	case first == '{':
		return Object, nil
	case first == '[':
		return Array, nil
	case first == '"':
		return String, nil
	case first == 't' || first == 'f':
		return Boolean, nil
	case first == 'n':
		return Null, nil
	case first == '-' || isDigit(first):
		return Number, nil
	}
	return TypeNone, syntaxErrorf(ErrUnexpectedByte, pos, "unexpected byte %q", first)
}

// Parse forces full recognition of this handle's value, advancing the
// Source's cursor past it. It is idempotent: a handle that is already
// loaded simply re-seeks to its end offset rather than re-running its
// recogniser (§3, "Invariants").
func (h *Handle) Parse() error {
	if h.Loaded() {
		return h.src.SeekAbsolute(h.end)
	}
	switch h.typ {
	case Null:
		return h.parseNull()
	case Boolean:
		return h.parseBoolean()
	case Number:
		return h.parseNumber()
	case String:
		return h.parseStringFull()
	case Array:
		return h.parseArrayFull()
	case Object:
		return h.parseObjectFull()
	}
	return logicErrorf("handle has unknown type %v", h.typ)
}

func (h *Handle) String() string {
	return fmt.Sprintf("Handle{%v @%d}", h.typ, h.start)
}
