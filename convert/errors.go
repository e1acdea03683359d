// Package convert turns binary gcode files into their ascii gcode
// textual form.
//
// This file defines the closed error taxonomy of a conversion. Every
// failure maps onto exactly one kind; none are retriable. Use
// errors.Is(err, ErrXxx) for typed assertions.
package convert

import (
	"errors"
	"fmt"

	"github.com/pithecene-io/bgc/bgcode"
)

// Sentinel kinds for conversion failure classification.
var (
	// ErrFormatInvalid indicates the input is not a recognized binary
	// gcode file (bad magic, unsupported version, bad checksum type).
	ErrFormatInvalid = errors.New("invalid binary gcode file")

	// ErrInvalidSequence indicates a block of an unexpected type where the
	// grammar mandates a specific next type.
	ErrInvalidSequence = errors.New("invalid block sequence")

	// ErrChecksum indicates a block failed checksum verification.
	ErrChecksum = errors.New("block checksum mismatch")

	// ErrDecode indicates a block payload could not be deserialized, or
	// the file ended inside a block.
	ErrDecode = errors.New("block decode failed")

	// ErrWrite indicates an append to the output sink failed. Bytes
	// already written are not retracted; discard the output.
	ErrWrite = errors.New("output write failed")

	// ErrUnsupported indicates a conversion direction this package does
	// not implement.
	ErrUnsupported = errors.New("conversion not supported")
)

// Error wraps an underlying failure with its conversion kind and the
// operation that hit it. It preserves the original error in the chain
// for inspection via errors.As.
type Error struct {
	// Kind is the sentinel kind (e.g. ErrInvalidSequence).
	Kind error
	// Op is the conversion step that failed (e.g. "read printer metadata").
	Op string
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel kind.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// wrap classifies err into the taxonomy and attaches the operation name.
// Errors already carrying a kind pass through unchanged so the first
// classification wins. Returns nil if err is nil.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

// classify maps container-layer errors onto the closed taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, bgcode.ErrBadMagic),
		errors.Is(err, bgcode.ErrUnsupportedVersion),
		errors.Is(err, bgcode.ErrBadChecksumType):
		return ErrFormatInvalid
	case errors.Is(err, bgcode.ErrChecksumMismatch):
		return ErrChecksum
	case errors.Is(err, bgcode.ErrUnexpectedBlock):
		return ErrInvalidSequence
	default:
		// Decode failures, truncation, and bare I/O errors on the input
		// side all mean the payload could not be read into shape.
		return ErrDecode
	}
}
