package bgcode

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/pithecene-io/bgc/types"
)

// blockHeaderSize is the fixed size of a block header: type u16 + payload
// size u32, little-endian.
const blockHeaderSize = 6

// thumbnailParamsSize covers the format, width, and height parameters of
// a thumbnail block.
const thumbnailParamsSize = 6

// BlockHeader is a decoded block header. It is transient: read one,
// then either decode the payload, or skip it, before reading the next.
type BlockHeader struct {
	// Type is the block type tag.
	Type types.BlockType
	// PayloadSize is the payload length in bytes, excluding parameters
	// and checksum.
	PayloadSize uint32
	// Offset is the file offset of the header, recorded at read time.
	Offset int64
}

// paramsSize returns the size of the type-specific parameter area that
// sits between the header and the payload.
func (h BlockHeader) paramsSize() int64 {
	if h.Type == types.BlockThumbnail {
		return thumbnailParamsSize
	}
	return 0
}

// contentSize returns the number of bytes following the header:
// parameters, payload, and checksum.
func (h BlockHeader) contentSize(fh FileHeader) int64 {
	return h.paramsSize() + int64(h.PayloadSize) + fh.Checksum.Size()
}

// ReadBlockHeader reads the block header at the current stream position.
// On return the cursor sits immediately after the header, in front of the
// block's parameter area, regardless of whether verification ran.
//
// With verify set and a CRC32 file header, the block's parameter, payload,
// and checksum bytes are consumed to recompute the checksum, then the
// cursor is restored.
//
// Errors:
//   - io.EOF: the stream ended cleanly at a block boundary
//   - ErrTruncated: the stream ended inside the header or block body
//   - *ChecksumError (matches ErrChecksumMismatch): verification failed
func ReadBlockHeader(rs io.ReadSeeker, fh FileHeader, verify bool) (BlockHeader, error) {
	offset, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return BlockHeader{}, fmt.Errorf("tell: %w", err)
	}

	var buf [blockHeaderSize]byte
	if _, err := io.ReadFull(rs, buf[:]); err != nil {
		if err == io.EOF {
			return BlockHeader{}, io.EOF
		}
		return BlockHeader{}, fmt.Errorf("block header at offset %d: %w", offset, ErrTruncated)
	}

	h := BlockHeader{
		Type:        types.BlockType(binary.LittleEndian.Uint16(buf[0:2])),
		PayloadSize: binary.LittleEndian.Uint32(buf[2:6]),
		Offset:      offset,
	}

	if verify && fh.Checksum == types.ChecksumCRC32 {
		if err := verifyBlockChecksum(rs, fh, h, buf[:]); err != nil {
			return BlockHeader{}, err
		}
	}
	return h, nil
}

// ReadExpectedBlockHeader reads the next block header and requires it to
// carry the given type. On mismatch it returns *UnexpectedBlockError
// (matches ErrUnexpectedBlock) with the cursor left after the header;
// callers treat the mismatch as fatal and do not continue.
func ReadExpectedBlockHeader(rs io.ReadSeeker, fh FileHeader, want types.BlockType, verify bool) (BlockHeader, error) {
	h, err := ReadBlockHeader(rs, fh, verify)
	if err != nil {
		return BlockHeader{}, err
	}
	if h.Type != want {
		return BlockHeader{}, &UnexpectedBlockError{Want: want, Got: h.Type, Offset: h.Offset}
	}
	return h, nil
}

// SkipBlock advances the cursor past the block's parameters, payload, and
// checksum without decoding. The cursor must sit immediately after the
// block header.
func SkipBlock(rs io.ReadSeeker, fh FileHeader, h BlockHeader) error {
	end := h.Offset + blockHeaderSize + h.contentSize(fh)
	if _, err := rs.Seek(end, io.SeekStart); err != nil {
		return fmt.Errorf("skip %s block at offset %d: %w", h.Type, h.Offset, err)
	}
	return nil
}

// verifyBlockChecksum recomputes the CRC32 of the block (header through
// payload), compares it against the stored value, and restores the cursor
// to just after the header.
func verifyBlockChecksum(rs io.ReadSeeker, fh FileHeader, h BlockHeader, headerBytes []byte) error {
	sum := crc32.NewIEEE()
	sum.Write(headerBytes)

	body := h.paramsSize() + int64(h.PayloadSize)
	if _, err := io.CopyN(sum, rs, body); err != nil {
		return fmt.Errorf("%s block at offset %d: %w", h.Type, h.Offset, ErrTruncated)
	}

	var stored [4]byte
	if _, err := io.ReadFull(rs, stored[:]); err != nil {
		return fmt.Errorf("%s block at offset %d: %w", h.Type, h.Offset, ErrTruncated)
	}
	if want, got := binary.LittleEndian.Uint32(stored[:]), sum.Sum32(); want != got {
		return &ChecksumError{Type: h.Type, Offset: h.Offset, Want: want, Got: got}
	}

	if _, err := rs.Seek(h.Offset+blockHeaderSize, io.SeekStart); err != nil {
		return fmt.Errorf("restore position after verify: %w", err)
	}
	return nil
}
