package bgcode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pithecene-io/bgc/types"
)

// Thumbnail is the decoded payload of a thumbnail block: raw encoded
// image bytes plus the pixel dimensions and format tag from the block
// parameters.
type Thumbnail struct {
	Format types.ThumbnailFormat
	Width  uint16
	Height uint16
	Data   []byte
}

// ReadMetadataBlock decodes a metadata block payload into its ordered
// key/value entries. The cursor must sit immediately after the block
// header; on success it is left at the next block header.
//
// Valid for the file, printer, print, and slicer metadata block types.
func ReadMetadataBlock(rs io.ReadSeeker, fh FileHeader, h BlockHeader) ([]types.MetadataPair, error) {
	if h.Type == types.BlockGCode || h.Type == types.BlockThumbnail {
		return nil, &DecodeError{Type: h.Type, Offset: h.Offset,
			Err: fmt.Errorf("%s block carries no metadata payload", h.Type)}
	}

	payload, err := readBlockBody(rs, fh, h, nil)
	if err != nil {
		return nil, err
	}

	var entries []types.MetadataPair
	if err := msgpack.Unmarshal(payload, &entries); err != nil {
		return nil, &DecodeError{Type: h.Type, Offset: h.Offset, Err: err}
	}
	return entries, nil
}

// ReadThumbnailBlock decodes a thumbnail block's parameters and payload.
// The cursor must sit immediately after the block header; on success it
// is left at the next block header.
func ReadThumbnailBlock(rs io.ReadSeeker, fh FileHeader, h BlockHeader) (Thumbnail, error) {
	if h.Type != types.BlockThumbnail {
		return Thumbnail{}, &DecodeError{Type: h.Type, Offset: h.Offset,
			Err: fmt.Errorf("not a thumbnail block")}
	}

	var params [thumbnailParamsSize]byte
	data, err := readBlockBody(rs, fh, h, params[:])
	if err != nil {
		return Thumbnail{}, err
	}

	return Thumbnail{
		Format: types.ThumbnailFormat(binary.LittleEndian.Uint16(params[0:2])),
		Width:  binary.LittleEndian.Uint16(params[2:4]),
		Height: binary.LittleEndian.Uint16(params[4:6]),
		Data:   data,
	}, nil
}

// ReadGCodeBlock decodes a gcode block payload as a text blob.
// The cursor must sit immediately after the block header; on success it
// is left at the next block header.
func ReadGCodeBlock(rs io.ReadSeeker, fh FileHeader, h BlockHeader) (string, error) {
	if h.Type != types.BlockGCode {
		return "", &DecodeError{Type: h.Type, Offset: h.Offset,
			Err: fmt.Errorf("not a gcode block")}
	}

	payload, err := readBlockBody(rs, fh, h, nil)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// readBlockBody reads the parameter area (into params, when non-nil) and
// the payload, then steps the cursor over the trailing checksum so it
// lands on the next block header. Checksum verification, if requested,
// already happened during the header read.
func readBlockBody(rs io.ReadSeeker, fh FileHeader, h BlockHeader, params []byte) ([]byte, error) {
	if len(params) > 0 {
		if _, err := io.ReadFull(rs, params); err != nil {
			return nil, &DecodeError{Type: h.Type, Offset: h.Offset, Err: ErrTruncated}
		}
	}

	payload := make([]byte, h.PayloadSize)
	if _, err := io.ReadFull(rs, payload); err != nil {
		return nil, &DecodeError{Type: h.Type, Offset: h.Offset, Err: ErrTruncated}
	}

	if size := fh.Checksum.Size(); size > 0 {
		if _, err := rs.Seek(size, io.SeekCurrent); err != nil {
			return nil, &DecodeError{Type: h.Type, Offset: h.Offset, Err: err}
		}
	}
	return payload, nil
}
