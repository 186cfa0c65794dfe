package lazyjson

import "testing"

func TestBooleanScalarRecogniser(t *testing.T) {
	for in, want := range map[string]bool{"true": true, "false": false} {
		h, err := Load(bytesReader(in), true)
		if err != nil {
			t.Fatal(err)
		}
		got, err := h.Bool()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("Bool(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNullScalarRecogniser(t *testing.T) {
	h, err := Load(bytesReader("null"), true)
	if err != nil {
		t.Fatal(err)
	}
	if h.Type() != Null {
		t.Fatalf("Type() = %v, want Null", h.Type())
	}
	if err := h.Parse(); err != nil {
		t.Fatal(err)
	}
	if h.EndOffset() != 4 {
		t.Fatalf("EndOffset() = %d, want 4", h.EndOffset())
	}
}
