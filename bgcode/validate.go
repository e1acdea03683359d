package bgcode

import (
	"errors"
	"io"

	"github.com/pithecene-io/bgc/types"
)

// Validate reports whether the stream is a recognized binary gcode file.
// It rewinds to the start, checks the file header (magic, version,
// checksum type), and, with verifyChecksums set and a CRC32 file header,
// walks every block verifying its checksum.
//
// The stream position is undefined on return; callers reposition
// explicitly before reading.
func Validate(rs io.ReadSeeker, verifyChecksums bool) error {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return err
	}
	fh, err := ReadFileHeader(rs)
	if err != nil {
		return err
	}
	if !verifyChecksums || fh.Checksum != types.ChecksumCRC32 {
		return nil
	}

	// Walk all blocks: ReadBlockHeader verifies each checksum, SkipBlock
	// steps over the content.
	for {
		h, err := ReadBlockHeader(rs, fh, true)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := SkipBlock(rs, fh, h); err != nil {
			return err
		}
	}
}
