package lazyjson

import (
	"errors"
	"testing"
)

func TestMemSourceReadAdvancesCursor(t *testing.T) {
	src := NewSource([]byte("abcdef"))
	b, err := src.Read(3, true)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "abc" {
		t.Fatalf("got %q, want %q", b, "abc")
	}
	if got := src.Tell(); got != 3 {
		t.Fatalf("Tell() = %d, want 3", got)
	}
}

func TestMemSourceRequireAllFailsAtEOF(t *testing.T) {
	src := NewSource([]byte("ab"))
	if _, err := src.Read(5, true); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("got %v, want ErrUnexpectedEOF", err)
	}
}

func TestMemSourceShortReadAllowed(t *testing.T) {
	src := NewSource([]byte("ab"))
	b, err := src.Read(5, false)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "ab" {
		t.Fatalf("got %q, want %q", b, "ab")
	}
}

func TestMemSourcePeekDoesNotConsume(t *testing.T) {
	src := NewSource([]byte("xy"))
	b, ok, err := src.Peek()
	if err != nil || !ok || b != 'x' {
		t.Fatalf("Peek() = %q, %v, %v", b, ok, err)
	}
	if src.Tell() != 0 {
		t.Fatalf("Peek consumed a byte, Tell() = %d", src.Tell())
	}
}

func TestMemSourcePeekAtEOF(t *testing.T) {
	src := NewSource(nil)
	_, ok, err := src.Peek()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("Peek() on empty source reported ok=true")
	}
	if !src.EOF() {
		t.Fatal("EOF() = false on empty source")
	}
}

func TestMemSourceSeekAbsoluteAndRelative(t *testing.T) {
	src := NewSource([]byte("0123456789"))
	if err := src.SeekAbsolute(5); err != nil {
		t.Fatal(err)
	}
	if src.Tell() != 5 {
		t.Fatalf("Tell() = %d, want 5", src.Tell())
	}
	if err := src.SeekRelative(-2); err != nil {
		t.Fatal(err)
	}
	if src.Tell() != 3 {
		t.Fatalf("Tell() = %d, want 3", src.Tell())
	}
	if err := src.SeekAbsolute(-1); err == nil {
		t.Fatal("expected error seeking to negative offset")
	}
}
