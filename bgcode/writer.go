package bgcode

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pithecene-io/bgc/types"
)

// Writer emits a binary gcode file per FORMAT.md: the file header
// followed by typed, optionally checksummed blocks. Callers are
// responsible for emitting blocks in the order the format mandates;
// Writer does not enforce the block grammar.
type Writer struct {
	w  io.Writer
	fh FileHeader
}

// NewWriter writes the file header and returns a Writer that appends
// blocks with the given checksum type.
func NewWriter(w io.Writer, checksum types.ChecksumType) (*Writer, error) {
	if checksum != types.ChecksumNone && checksum != types.ChecksumCRC32 {
		return nil, fmt.Errorf("checksum type %d: %w", uint16(checksum), ErrBadChecksumType)
	}

	var buf [FileHeaderSize]byte
	copy(buf[:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], CurrentVersion)
	binary.LittleEndian.PutUint16(buf[8:10], uint16(checksum))
	if _, err := w.Write(buf[:]); err != nil {
		return nil, fmt.Errorf("write file header: %w", err)
	}

	return &Writer{w: w, fh: FileHeader{Version: CurrentVersion, Checksum: checksum}}, nil
}

// FileHeader returns the header written at construction.
func (bw *Writer) FileHeader() FileHeader {
	return bw.fh
}

// WriteMetadataBlock appends a metadata block of the given type with the
// entries msgpack-encoded in order.
func (bw *Writer) WriteMetadataBlock(t types.BlockType, entries []types.MetadataPair) error {
	if t == types.BlockGCode || t == types.BlockThumbnail {
		return fmt.Errorf("%s is not a metadata block type", t)
	}
	payload, err := msgpack.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s block: %w", t, err)
	}
	return bw.writeBlock(t, nil, payload)
}

// WriteThumbnailBlock appends a thumbnail block with the image bytes as
// payload and the format and dimensions as parameters.
func (bw *Writer) WriteThumbnailBlock(format types.ThumbnailFormat, width, height uint16, data []byte) error {
	var params [thumbnailParamsSize]byte
	binary.LittleEndian.PutUint16(params[0:2], uint16(format))
	binary.LittleEndian.PutUint16(params[2:4], width)
	binary.LittleEndian.PutUint16(params[4:6], height)
	return bw.writeBlock(types.BlockThumbnail, params[:], data)
}

// WriteGCodeBlock appends a gcode block with the text blob as payload.
func (bw *Writer) WriteGCodeBlock(text string) error {
	return bw.writeBlock(types.BlockGCode, nil, []byte(text))
}

// writeBlock emits header, parameters, payload, and, when the file header
// declares CRC32, the checksum over all block bytes.
func (bw *Writer) writeBlock(t types.BlockType, params, payload []byte) error {
	var header [blockHeaderSize]byte
	binary.LittleEndian.PutUint16(header[0:2], uint16(t))
	binary.LittleEndian.PutUint32(header[2:6], uint32(len(payload)))

	for _, chunk := range [][]byte{header[:], params, payload} {
		if len(chunk) == 0 {
			continue
		}
		if _, err := bw.w.Write(chunk); err != nil {
			return fmt.Errorf("write %s block: %w", t, err)
		}
	}

	if bw.fh.Checksum == types.ChecksumCRC32 {
		sum := crc32.NewIEEE()
		sum.Write(header[:])
		sum.Write(params)
		sum.Write(payload)
		var trailer [4]byte
		binary.LittleEndian.PutUint32(trailer[:], sum.Sum32())
		if _, err := bw.w.Write(trailer[:]); err != nil {
			return fmt.Errorf("write %s block checksum: %w", t, err)
		}
	}
	return nil
}
