package lazyjson

import (
	"errors"
	"testing"
)

func TestArrayIterationScenario(t *testing.T) {
	h, err := Load(bytesReader("[1,2,3]"), true)
	if err != nil {
		t.Fatal(err)
	}
	it := h.Elements()
	var got []int
	for {
		idx, child, ok, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		n, err := child.Int64()
		if err != nil {
			t.Fatal(err)
		}
		if int64(idx) != n-1 {
			t.Fatalf("index %d paired with value %d", idx, n)
		}
		got = append(got, int(n))
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v", got)
	}

	n, err := h.Length()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("Length() = %d, want 3", n)
	}

	_, ok, err := h.At(3)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("At(3) should be absent in a 3-element array")
	}
}

func TestArrayTrailingCommaFails(t *testing.T) {
	h, err := Load(bytesReader("[1,]"), true)
	if err != nil {
		t.Fatal(err)
	}
	_, err = h.Decode(false)
	if !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("got %v, want ErrInvalidContainer", err)
	}
}

func TestArrayEmptyArray(t *testing.T) {
	h, err := Load(bytesReader("[]"), true)
	if err != nil {
		t.Fatal(err)
	}
	n, err := h.Length()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("Length() = %d, want 0", n)
	}
	_, ok, err := h.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("At(0) should be absent in an empty array")
	}
}

func TestArrayIndependentDecodingOfSiblings(t *testing.T) {
	h, err := Load(bytesReader("[false, true]"), true)
	if err != nil {
		t.Fatal(err)
	}
	zero, ok, err := h.At(0)
	if err != nil || !ok {
		t.Fatalf("At(0): %v, %v", ok, err)
	}
	v0, err := zero.Bool()
	if err != nil {
		t.Fatal(err)
	}
	if v0 != false {
		t.Fatalf("At(0) decoded %v, want false", v0)
	}

	one, ok, err := h.At(1)
	if err != nil || !ok {
		t.Fatalf("At(1): %v, %v", ok, err)
	}
	v1, err := one.Bool()
	if err != nil {
		t.Fatal(err)
	}
	if v1 != true {
		t.Fatalf("At(1) decoded %v, want true", v1)
	}
}

func TestArrayCachedAtMatchesIteratedValue(t *testing.T) {
	h, err := Load(bytesReader(`["a","bb","ccc"]`), true)
	if err != nil {
		t.Fatal(err)
	}
	// Fully walk once to populate the cache.
	if err := h.Parse(); err != nil {
		t.Fatal(err)
	}

	child, ok, err := h.At(1)
	if err != nil || !ok {
		t.Fatalf("At(1): %v, %v", ok, err)
	}
	if child.StartOffset() != 5 {
		t.Fatalf("cached At(1).StartOffset() = %d, want 5", child.StartOffset())
	}
	s, err := child.StringValue()
	if err != nil {
		t.Fatal(err)
	}
	if s != "bb" {
		t.Fatalf("got %q, want %q", s, "bb")
	}
}

func TestArrayAllDecodesInOrder(t *testing.T) {
	h, err := Load(bytesReader("[1,2,3]"), true)
	if err != nil {
		t.Fatal(err)
	}
	vals, err := h.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 3 {
		t.Fatalf("got %d values, want 3", len(vals))
	}
	for i, v := range vals {
		n, ok := v.(int64)
		if !ok || n != int64(i+1) {
			t.Fatalf("vals[%d] = %v", i, v)
		}
	}
}
