package convert

import (
	"errors"
	"io"

	"github.com/pithecene-io/bgc/bgcode"
	"github.com/pithecene-io/bgc/log"
	"github.com/pithecene-io/bgc/types"
)

// Options configures a conversion.
type Options struct {
	// VerifyChecksums enables per-block checksum verification during the
	// walk. With it off, corrupt payloads decode without complaint,
	// possibly incorrectly.
	VerifyChecksums bool
	// Logger receives structured progress entries. Nil means silent.
	Logger *log.Logger
}

// Stats summarizes one completed or aborted conversion.
type Stats struct {
	// Producer is the slicer identity taken from the file metadata banner.
	Producer string `json:"producer" yaml:"producer"`
	// Blocks is the number of blocks decoded.
	Blocks int `json:"blocks" yaml:"blocks"`
	// Thumbnails is the number of thumbnail blocks rendered.
	Thumbnails int `json:"thumbnails" yaml:"thumbnails"`
	// GCodeBlocks is the number of gcode blocks rendered.
	GCodeBlocks int `json:"gcode_blocks" yaml:"gcode_blocks"`
	// LinesKept is the number of instruction lines emitted verbatim.
	LinesKept int64 `json:"lines_kept" yaml:"lines_kept"`
	// LinesDropped is the number of blank and pure-comment lines removed.
	LinesDropped int64 `json:"lines_dropped" yaml:"lines_dropped"`
	// BytesWritten is the number of bytes flushed to the output sink,
	// partial output on failure included.
	BytesWritten int64 `json:"bytes_written" yaml:"bytes_written"`
}

// BinaryToASCII converts a binary gcode stream into its ascii gcode
// textual form, walking the block stream in the order FORMAT.md mandates
// and rejecting any deviation.
//
// The conversion is all-or-nothing from the caller's perspective: on any
// error the returned Stats reflect progress up to the failure, the sink
// holds partial output, and the caller should discard it. The input
// cursor position is undefined on return.
func BinaryToASCII(src io.ReadSeeker, dst io.Writer, opts Options) (stats Stats, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}
	verify := opts.VerifyChecksums

	if err := bgcode.Validate(src, verify); err != nil {
		return stats, wrap("validate input", err)
	}

	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return stats, wrap("measure input", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return stats, wrap("rewind input", err)
	}
	fh, err := bgcode.ReadFileHeader(src)
	if err != nil {
		return stats, wrap("read file header", err)
	}

	w := newLineWriter(dst)
	defer func() { stats.BytesWritten = w.bytesWritten() }()
	cur := stateStart

	// File metadata: rendered as the producer banner, not key by key.
	h, err := bgcode.ReadBlockHeader(src, fh, verify)
	if err != nil {
		return stats, wrap("read file metadata block", err)
	}
	if cur, err = advance(cur, h.Type); err != nil {
		return stats, err
	}
	entries, err := bgcode.ReadMetadataBlock(src, fh, h)
	if err != nil {
		return stats, wrap("decode file metadata", err)
	}
	stats.Blocks++
	stats.Producer = producer(entries)
	if err := writeBanner(w, entries); err != nil {
		return stats, err
	}

	// Printer metadata.
	h, err = bgcode.ReadBlockHeader(src, fh, verify)
	if err != nil {
		return stats, wrap("read printer metadata block", err)
	}
	if cur, err = advance(cur, h.Type); err != nil {
		return stats, err
	}
	entries, err = bgcode.ReadMetadataBlock(src, fh, h)
	if err != nil {
		return stats, wrap("decode printer metadata", err)
	}
	stats.Blocks++
	if err := writeMetadata(w, entries); err != nil {
		return stats, err
	}
	logger.Debug("metadata rendered", map[string]any{"producer": stats.Producer, "entries": len(entries)})

	// Thumbnail loop. The restore point is refreshed before every header
	// read: the header that terminates the loop is the first gcode block
	// and must be re-derivable after the seek back below.
	restore, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return stats, wrap("record restore point", err)
	}
	h, err = bgcode.ReadBlockHeader(src, fh, verify)
	if err != nil {
		return stats, wrap("read block after printer metadata", err)
	}
	for h.Type == types.BlockThumbnail {
		if cur, err = advance(cur, h.Type); err != nil {
			return stats, err
		}
		th, err := bgcode.ReadThumbnailBlock(src, fh, h)
		if err != nil {
			return stats, wrap("decode thumbnail", err)
		}
		stats.Blocks++
		if err := writeThumbnail(w, th); err != nil {
			return stats, err
		}
		stats.Thumbnails++
		logger.Debug("thumbnail rendered", map[string]any{
			"format": th.Format.Label(), "width": th.Width, "height": th.Height,
		})

		if restore, err = src.Seek(0, io.SeekCurrent); err != nil {
			return stats, wrap("record restore point", err)
		}
		if h, err = bgcode.ReadBlockHeader(src, fh, verify); err != nil {
			return stats, wrap("read block after thumbnail", err)
		}
	}

	// The loop terminator must begin the instruction stream.
	if cur, err = advance(cur, h.Type); err != nil {
		return stats, err
	}

	// Blank separator before the instruction stream.
	if err := w.writeString("\n"); err != nil {
		return stats, err
	}

	// Instruction stream. The terminator header was already consumed
	// during thumbnail-end detection, so re-enter from the restore point
	// and let the loop derive it again. The run ends at the first
	// non-gcode header (left unconsumed for the re-read below) or at
	// physical end of file; the format stores no last-block marker.
	if _, err := src.Seek(restore, io.SeekStart); err != nil {
		return stats, wrap("seek to instruction stream", err)
	}
	for {
		if restore, err = src.Seek(0, io.SeekCurrent); err != nil {
			return stats, wrap("record restore point", err)
		}
		if h, err = bgcode.ReadBlockHeader(src, fh, verify); err != nil {
			return stats, wrap("read instruction block", err)
		}
		if h.Type != types.BlockGCode {
			break
		}
		if cur, err = advance(cur, h.Type); err != nil {
			return stats, err
		}
		blob, err := bgcode.ReadGCodeBlock(src, fh, h)
		if err != nil {
			return stats, wrap("decode gcode block", err)
		}
		stats.Blocks++
		if err := writeInstructions(w, blob, &stats); err != nil {
			return stats, err
		}
		stats.GCodeBlocks++

		pos, err := src.Seek(0, io.SeekCurrent)
		if err != nil {
			return stats, wrap("tell input", err)
		}
		if pos == size {
			// Physical EOF with the trailing metadata blocks missing.
			return stats, &Error{
				Kind: ErrInvalidSequence,
				Op:   "after instruction stream",
				Err:  errors.New("file ends before print metadata"),
			}
		}
	}
	logger.Debug("instruction stream rendered", map[string]any{
		"blocks": stats.GCodeBlocks, "lines": stats.LinesKept, "dropped": stats.LinesDropped,
	})

	// Print metadata: backtrack and re-read the header that ended the
	// instruction loop.
	if _, err := src.Seek(restore, io.SeekStart); err != nil {
		return stats, wrap("seek to print metadata", err)
	}
	h, err = bgcode.ReadExpectedBlockHeader(src, fh, types.BlockPrintMetadata, verify)
	if err != nil {
		return stats, wrap("read print metadata block", err)
	}
	if cur, err = advance(cur, h.Type); err != nil {
		return stats, err
	}
	entries, err = bgcode.ReadMetadataBlock(src, fh, h)
	if err != nil {
		return stats, wrap("decode print metadata", err)
	}
	stats.Blocks++
	if err := w.writeString("\n"); err != nil {
		return stats, err
	}
	if err := writeMetadata(w, entries); err != nil {
		return stats, err
	}

	// Slicer metadata, fenced by config markers.
	h, err = bgcode.ReadExpectedBlockHeader(src, fh, types.BlockSlicerMetadata, verify)
	if err != nil {
		return stats, wrap("read slicer metadata block", err)
	}
	if _, err = advance(cur, h.Type); err != nil {
		return stats, err
	}
	entries, err = bgcode.ReadMetadataBlock(src, fh, h)
	if err != nil {
		return stats, wrap("decode slicer metadata", err)
	}
	stats.Blocks++
	if err := w.writeString("\n; prusaslicer_config = begin\n"); err != nil {
		return stats, err
	}
	if err := writeMetadata(w, entries); err != nil {
		return stats, err
	}
	if err := w.writeString("; prusaslicer_config = end\n\n"); err != nil {
		return stats, err
	}

	logger.Info("conversion complete", map[string]any{
		"blocks": stats.Blocks, "bytes": w.bytesWritten(),
	})
	return stats, nil
}

// ASCIIToBinary is the reverse direction. It is declared for symmetry
// and returns ErrUnsupported unconditionally; callers must not rely on
// it for round-tripping.
func ASCIIToBinary(src io.Reader, dst io.Writer) error {
	return &Error{Kind: ErrUnsupported, Op: "convert ascii to binary"}
}
