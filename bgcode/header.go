package bgcode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pithecene-io/bgc/types"
)

// File header constants per FORMAT.md.
const (
	// Magic is the four-byte file signature.
	Magic = "GCDE"
	// CurrentVersion is the newest format version this package reads.
	CurrentVersion uint32 = 1
	// FileHeaderSize is the fixed size of the file header in bytes.
	FileHeaderSize = 10
)

// FileHeader is the decoded fixed-size file header. Every block read call
// requires it: the checksum type determines the size of each block's
// trailing checksum.
type FileHeader struct {
	// Version is the format version declared by the file.
	Version uint32
	// Checksum is the per-block checksum algorithm.
	Checksum types.ChecksumType
}

// ReadFileHeader reads and validates the file header at the current
// stream position, advancing the cursor past it.
//
// Errors:
//   - ErrBadMagic: the signature is not GCDE
//   - ErrUnsupportedVersion: version newer than CurrentVersion
//   - ErrBadChecksumType: checksum type not defined by FORMAT.md
//   - ErrTruncated: the stream ended inside the header
func ReadFileHeader(r io.Reader) (FileHeader, error) {
	var buf [FileHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return FileHeader{}, fmt.Errorf("read file header: %w", ErrTruncated)
	}
	if string(buf[:4]) != Magic {
		return FileHeader{}, fmt.Errorf("file signature %q: %w", buf[:4], ErrBadMagic)
	}

	h := FileHeader{
		Version:  binary.LittleEndian.Uint32(buf[4:8]),
		Checksum: types.ChecksumType(binary.LittleEndian.Uint16(buf[8:10])),
	}
	if h.Version > CurrentVersion {
		return FileHeader{}, fmt.Errorf("version %d: %w", h.Version, ErrUnsupportedVersion)
	}
	if h.Checksum != types.ChecksumNone && h.Checksum != types.ChecksumCRC32 {
		return FileHeader{}, fmt.Errorf("checksum type %d: %w", uint16(h.Checksum), ErrBadChecksumType)
	}
	return h, nil
}
