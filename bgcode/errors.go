// Package bgcode reads and writes the binary gcode container per FORMAT.md.
//
// This file defines sentinel errors and error wrappers for classifying
// container-level failures. These enable callers to use errors.Is/errors.As
// for typed assertions rather than string matching.
package bgcode

import (
	"errors"
	"fmt"

	"github.com/pithecene-io/bgc/types"
)

// Sentinel errors for container failure classification.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrBadMagic indicates the file does not start with the GCDE magic.
	ErrBadMagic = errors.New("bad magic")

	// ErrUnsupportedVersion indicates a format version newer than this
	// package understands.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrBadChecksumType indicates an unknown checksum type in the file header.
	ErrBadChecksumType = errors.New("unknown checksum type")

	// ErrChecksumMismatch indicates a block failed CRC32 verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrTruncated indicates the file ended inside a header, parameter
	// area, payload, or checksum.
	ErrTruncated = errors.New("truncated file")

	// ErrUnexpectedBlock indicates a block of a different type than the
	// caller required.
	ErrUnexpectedBlock = errors.New("unexpected block type")
)

// ChecksumError reports a failed block checksum verification.
// It matches ErrChecksumMismatch via errors.Is.
type ChecksumError struct {
	// Type is the block type whose verification failed.
	Type types.BlockType
	// Offset is the file offset of the block header.
	Offset int64
	// Want is the checksum stored in the file.
	Want uint32
	// Got is the checksum computed over the block bytes.
	Got uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s block at offset %d: checksum mismatch (stored %08x, computed %08x)",
		e.Type, e.Offset, e.Want, e.Got)
}

// Is reports whether the error matches the ErrChecksumMismatch sentinel.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// UnexpectedBlockError reports a block type mismatch from
// ReadExpectedBlockHeader. It matches ErrUnexpectedBlock via errors.Is.
type UnexpectedBlockError struct {
	// Want is the block type the caller required.
	Want types.BlockType
	// Got is the block type found in the file.
	Got types.BlockType
	// Offset is the file offset of the block header.
	Offset int64
}

func (e *UnexpectedBlockError) Error() string {
	return fmt.Sprintf("expected %s block at offset %d, found %s", e.Want, e.Offset, e.Got)
}

// Is reports whether the error matches the ErrUnexpectedBlock sentinel.
func (e *UnexpectedBlockError) Is(target error) bool {
	return target == ErrUnexpectedBlock
}

// DecodeError reports a block payload that could not be deserialized
// into its typed shape.
type DecodeError struct {
	// Type is the block type whose payload failed to decode.
	Type types.BlockType
	// Offset is the file offset of the block header.
	Offset int64
	// Err is the underlying error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s block at offset %d: %v", e.Type, e.Offset, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
