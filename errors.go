package lazyjson

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error kinds of §7. Callers compare with errors.Is;
// every concrete error returned by this package wraps one of these.
var (
	// ErrSourceUnusable is returned by Load when the byte source is not
	// readable or is empty.
	ErrSourceUnusable = errors.New("lazyjson: source not readable or empty")

	// ErrUnexpectedEOF is returned when EOF is encountered where a value
	// byte was required.
	ErrUnexpectedEOF = errors.New("lazyjson: unexpected end of input")

	// ErrUnexpectedByte is returned when a byte appears that no grammar
	// rule at the current state admits.
	ErrUnexpectedByte = errors.New("lazyjson: unexpected byte")

	// ErrInvalidLiteral is returned when a null/boolean literal is
	// partially matched and then diverges.
	ErrInvalidLiteral = errors.New("lazyjson: invalid literal")

	// ErrInvalidNumber is returned when the number recogniser encounters a
	// byte that is neither valid nor a legal terminator.
	ErrInvalidNumber = errors.New("lazyjson: invalid number")

	// ErrInvalidString is returned for a control byte inside a string, an
	// invalid escape, or a malformed \uXXXX escape (including orphan
	// surrogates).
	ErrInvalidString = errors.New("lazyjson: invalid string")

	// ErrInvalidContainer is returned for a missing comma/colon, trailing
	// comma, non-string object key, or missing terminator.
	ErrInvalidContainer = errors.New("lazyjson: invalid container structure")

	// ErrReadOnly is returned by any attempt to mutate a container.
	ErrReadOnly = errors.New("lazyjson: value is read-only")

	// ErrIO wraps a failure reported by the underlying byte source.
	ErrIO = errors.New("lazyjson: i/o failure")

	// ErrLogic marks an internal invariant violation. Seeing this
	// surfaced means the recogniser accepted bytes it should not have.
	ErrLogic = errors.New("lazyjson: internal logic error")
)

// SyntaxError is returned by every recogniser failure. It carries the byte
// offset at which the failure was detected, grounded on the offset-tagged
// error messages in the teacher's parsed_object.go/parsed_array.go and on
// errExpected's use of d.InputOffset() in the rsms-go-json reference reader.
type SyntaxError struct {
	Kind   error // one of the Err* sentinels above
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s at position %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Kind }

func syntaxErrorf(kind error, offset int64, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// ioError wraps an I/O failure from the byte source with ErrIO so that
// errors.Is(err, ErrIO) holds regardless of the underlying cause.
func ioError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrIO, err)
}

func logicErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrLogic, fmt.Sprintf(format, args...))
}
