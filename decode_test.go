package lazyjson

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
)

// TestDecodeRoundTripsAgainstJsoniter checks the decode-encode fidelity
// property of spec.md §8: decoding a well-formed document and re-encoding it
// with a reference encoder should reproduce an equivalent value (up to
// number formatting and key order), same as decoding it with the reference
// encoder directly.
func TestDecodeRoundTripsAgainstJsoniter(t *testing.T) {
	docs := []string{
		`{"a":1,"b":[1,2,3],"c":{"d":"e"},"f":null,"g":true,"h":3.5}`,
		`[1,"two",3.0,false,null,{"x":1}]`,
		`"a plain string with é and 😊"`,
		`-42`,
		`12345678901234`,
	}
	for _, doc := range docs {
		h, err := Load(bytesReader(doc), true)
		if err != nil {
			t.Fatalf("Load(%q): %v", doc, err)
		}
		got, err := h.Decode(true)
		if err != nil {
			t.Fatalf("Decode(%q): %v", doc, err)
		}

		var want interface{}
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(doc, &want); err != nil {
			t.Fatalf("jsoniter reference decode(%q): %v", doc, err)
		}

		if !deepEqualJSON(got, want) {
			t.Fatalf("Decode(%q) = %#v, want %#v (jsoniter)", doc, got, want)
		}

		encoded, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(got)
		if err != nil {
			t.Fatalf("jsoniter re-encode of Decode(%q): %v", doc, err)
		}
		var roundTripped interface{}
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(encoded, &roundTripped); err != nil {
			t.Fatalf("jsoniter decode of re-encoded %q: %v", encoded, err)
		}
		if !deepEqualJSON(got, roundTripped) {
			t.Fatalf("Decode(%q) = %#v, re-encoded as %s", doc, got, encoded)
		}
	}
}

// deepEqualJSON compares decoded JSON values while tolerating lazyjson's
// int64/float64 number split against jsoniter's float64-only numbers (§4.5:
// "decode-encode fidelity ... up to number-formatting differences").
func deepEqualJSON(a, b interface{}) bool {
	switch bv := b.(type) {
	case float64:
		switch av := a.(type) {
		case int64:
			return float64(av) == bv
		case float64:
			return av == bv
		}
		return false
	case map[string]interface{}:
		av, ok := a.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, bvv := range bv {
			avv, ok := av[k]
			if !ok || !deepEqualJSON(avv, bvv) {
				return false
			}
		}
		return true
	case []interface{}:
		av, ok := a.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range bv {
			if !deepEqualJSON(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
