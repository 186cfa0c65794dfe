package lazyjson

// Decode implements the decoder façade of §4.9: it fully materialises this
// handle, recursing through any container descendants. Null decodes to a
// nil interface{}; Number decodes to an int64 or float64; String decodes
// to a string; Array decodes to a []interface{}; Object decodes either to
// a map[string]interface{} (associative=true) or to an ordered []KeyValue
// "record" (associative=false) — a shape distinction only, per §4.9's
// final bullet, not a semantic one.
func (h *Handle) Decode(associative bool) (interface{}, error) {
	switch h.typ {
	case Null:
		if !h.Loaded() {
			if err := h.parseNull(); err != nil {
				return nil, err
			}
		}
		return nil, nil
	case Boolean:
		return h.Bool()
	case Number:
		if !h.Loaded() {
			if err := h.parseNumber(); err != nil {
				return nil, err
			}
		}
		return h.numberValue()
	case String:
		return h.StringValue()
	case Array:
		return h.decodeElements(associative)
	case Object:
		if associative {
			return h.decodeAssociative()
		}
		return h.AllProperties()
	}
	return nil, logicErrorf("Decode called on a handle with unknown type %v", h.typ)
}

// decodeAssociative decodes an Object into a map[string]interface{},
// applying the spec's "last occurrence wins" rule for duplicate keys
// (§4.8 point 4) since later ForEach calls simply overwrite the map entry.
func (h *Handle) decodeAssociative() (map[string]interface{}, error) {
	dst := make(map[string]interface{})
	err := h.ForEach(func(key string, value *Handle) error {
		v, err := value.Decode(true)
		if err != nil {
			return err
		}
		dst[key] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}
