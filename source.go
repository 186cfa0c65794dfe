package lazyjson

import (
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Source is the byte source adapter of §4.1: a random-access stream of
// bytes. Every handle that reads from a Source re-seeks to the offset it
// cares about before reading — callers may freely reposition the cursor
// between any two operations on any handle (§5, "Cursor discipline").
//
// Source is not safe for concurrent use: all handles sharing a Source share
// its cursor, matching the single-owner model of §5 ("Shared resources").
type Source interface {
	// Read returns the next n bytes, advancing the cursor by the number of
	// bytes actually returned. If requireAll is true and fewer than n bytes
	// are available before EOF, Read fails with ErrUnexpectedEOF. If
	// requireAll is false, Read returns a short read instead of failing.
	Read(n int, requireAll bool) ([]byte, error)

	// Peek returns the next byte without consuming it, and reports whether
	// a byte was available (false at EOF).
	Peek() (byte, bool, error)

	// SeekAbsolute repositions the cursor to an absolute byte offset.
	SeekAbsolute(pos int64) error

	// SeekRelative repositions the cursor by a signed delta from its
	// current position.
	SeekRelative(delta int64) error

	// Tell reports the cursor's current absolute position.
	Tell() int64

	// EOF reports whether the cursor is at the end of the stream.
	EOF() bool
}

// memSource is a Source backed by an in-memory byte slice. It underlies
// every concrete Source below: a plain file is read fully into memory (JSON
// documents handled by this package are expected to fit comfortably in
// memory; only the *parsed representation* is lazy, per §1), and a
// compressed file is decompressed fully into memory before being wrapped the
// same way.
type memSource struct {
	buf []byte
	pos int64
}

// newMemSource builds a Source directly from bytes already in memory.
func newMemSource(buf []byte) *memSource {
	return &memSource{buf: buf}
}

func (s *memSource) Read(n int, requireAll bool) ([]byte, error) {
	if n < 0 {
		return nil, logicErrorf("negative read length %d", n)
	}
	avail := int64(len(s.buf)) - s.pos
	if avail <= 0 {
		if n == 0 {
			return nil, nil
		}
		if requireAll {
			return nil, syntaxErrorf(ErrUnexpectedEOF, s.pos, "need %d bytes, got 0", n)
		}
		return nil, nil
	}
	take := int64(n)
	if take > avail {
		if requireAll {
			return nil, syntaxErrorf(ErrUnexpectedEOF, s.pos, "need %d bytes, got %d", n, avail)
		}
		take = avail
	}
	out := s.buf[s.pos : s.pos+take]
	s.pos += take
	return out, nil
}

func (s *memSource) Peek() (byte, bool, error) {
	if s.pos >= int64(len(s.buf)) {
		return 0, false, nil
	}
	return s.buf[s.pos], true, nil
}

func (s *memSource) SeekAbsolute(pos int64) error {
	if pos < 0 || pos > int64(len(s.buf)) {
		return ioError(errors.New("seek position out of range"))
	}
	s.pos = pos
	return nil
}

func (s *memSource) SeekRelative(delta int64) error {
	return s.SeekAbsolute(s.pos + delta)
}

func (s *memSource) Tell() int64 { return s.pos }

func (s *memSource) EOF() bool { return s.pos >= int64(len(s.buf)) }

// Open reads the file at path fully into memory and returns a random-access
// Source over its contents. Opening/closing and permission checks are an
// external collaborator per spec.md §1 ("Out of scope"); Open simply uses
// os.ReadFile and reports its error unwrapped through ErrIO.
func Open(path string) (Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError(err)
	}
	return newMemSource(b), nil
}

// NewSource wraps an already-materialised byte slice as a Source. Use this
// when the caller owns the bytes directly (e.g. an HTTP response body
// already read into memory).
func NewSource(b []byte) Source {
	return newMemSource(b)
}

// NewReaderSource drains r fully and returns a random-access Source over the
// result. Use Open or NewSource when possible; this exists for readers that
// are not already files or byte slices.
func NewReaderSource(r io.Reader) (Source, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, ioError(err)
	}
	return newMemSource(b), nil
}

// CompressionKind selects the codec used by OpenCompressed.
type CompressionKind int

const (
	// Zstd decompresses with github.com/klauspost/compress/zstd, the codec
	// the teacher uses for its serialized-tape format in
	// parsed_serialize.go.
	Zstd CompressionKind = iota
	// S2 decompresses with github.com/klauspost/compress/s2, the other
	// codec wired into parsed_serialize.go.
	S2
)

// OpenCompressed decompresses the zstd- or s2-compressed file at path fully
// into memory and returns a random-access Source over the decompressed
// bytes. This is the domain-stack home for github.com/klauspost/compress in
// this repo: the teacher uses the same package to compress/decompress a
// serialized parse tape (parsed_serialize.go); here it lets a caller keep
// JSON documents compressed at rest while the reader above still sees an
// ordinary random-access byte source. Compression defeats true streaming
// random access, so the decompressed form is buffered in memory once, same
// as a plain Open.
func OpenCompressed(path string, kind CompressionKind) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(err)
	}
	defer f.Close()

	var r io.Reader
	switch kind {
	case Zstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, ioError(err)
		}
		defer zr.Close()
		r = zr
	case S2:
		r = s2.NewReader(f)
	default:
		return nil, logicErrorf("unknown compression kind %d", kind)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, ioError(err)
	}
	return newMemSource(b), nil
}

// bytesReaderSource adapts an io.ReadSeeker (e.g. *os.File kept open rather
// than slurped, or a *bytes.Reader a caller already holds) to Source without
// copying. Provided for callers that want to avoid NewReaderSource's
// full-buffer read; most callers should prefer Open or NewSource.
type bytesReaderSource struct {
	r    io.ReadSeeker
	pos  int64
	size int64
}

// NewSeekerSource wraps an io.ReadSeeker directly, avoiding the up-front
// copy that Open and NewReaderSource perform. size must be the total length
// of the stream (e.g. from a prior Seek(0, io.SeekEnd)).
func NewSeekerSource(r io.ReadSeeker, size int64) Source {
	return &bytesReaderSource{r: r, size: size}
}

func (s *bytesReaderSource) Read(n int, requireAll bool) ([]byte, error) {
	if n < 0 {
		return nil, logicErrorf("negative read length %d", n)
	}
	if _, err := s.r.Seek(s.pos, io.SeekStart); err != nil {
		return nil, ioError(err)
	}
	buf := make([]byte, n)
	got, err := io.ReadFull(s.r, buf)
	s.pos += int64(got)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, ioError(err)
	}
	if got < n {
		if requireAll {
			s.pos -= int64(got)
			return nil, syntaxErrorf(ErrUnexpectedEOF, s.pos, "need %d bytes, got %d", n, got)
		}
		return buf[:got], nil
	}
	return buf, nil
}

func (s *bytesReaderSource) Peek() (byte, bool, error) {
	if s.pos >= s.size {
		return 0, false, nil
	}
	b, err := s.Read(1, false)
	if err != nil {
		return 0, false, err
	}
	if len(b) == 0 {
		return 0, false, nil
	}
	s.pos--
	return b[0], true, nil
}

func (s *bytesReaderSource) SeekAbsolute(pos int64) error {
	if pos < 0 || pos > s.size {
		return ioError(errors.New("seek position out of range"))
	}
	s.pos = pos
	return nil
}

func (s *bytesReaderSource) SeekRelative(delta int64) error {
	return s.SeekAbsolute(s.pos + delta)
}

func (s *bytesReaderSource) Tell() int64 { return s.pos }

func (s *bytesReaderSource) EOF() bool { return s.pos >= s.size }

// bytesReader is a small helper used by tests to build a Source from a
// string without going through the filesystem.
func bytesReader(s string) Source {
	return newMemSource([]byte(s))
}
