// Package types defines the shared vocabulary of the binary gcode
// container: block types, thumbnail formats, checksum types, and metadata
// entries. Values follow FORMAT.md and must not change between releases;
// they are part of the on-disk format.
//
// This is a leaf package with no internal dependencies.
package types

import "fmt"

// BlockType identifies the kind of a block within a binary gcode file.
// The numeric values are part of the on-disk format per FORMAT.md.
type BlockType uint16

// Block types per FORMAT.md.
const (
	BlockFileMetadata    BlockType = 0
	BlockGCode           BlockType = 1
	BlockSlicerMetadata  BlockType = 2
	BlockPrinterMetadata BlockType = 3
	BlockPrintMetadata   BlockType = 4
	BlockThumbnail       BlockType = 5
)

// String returns a human-readable name for logs and error messages.
func (t BlockType) String() string {
	switch t {
	case BlockFileMetadata:
		return "file metadata"
	case BlockGCode:
		return "gcode"
	case BlockSlicerMetadata:
		return "slicer metadata"
	case BlockPrinterMetadata:
		return "printer metadata"
	case BlockPrintMetadata:
		return "print metadata"
	case BlockThumbnail:
		return "thumbnail"
	default:
		return fmt.Sprintf("unknown(%d)", uint16(t))
	}
}

// Known returns true for block types defined by FORMAT.md.
func (t BlockType) Known() bool {
	return t <= BlockThumbnail
}

// ThumbnailFormat identifies the image encoding of a thumbnail block.
type ThumbnailFormat uint16

// Thumbnail formats per FORMAT.md.
const (
	ThumbnailPNG ThumbnailFormat = 0
	ThumbnailJPG ThumbnailFormat = 1
	ThumbnailQOI ThumbnailFormat = 2
)

func (f ThumbnailFormat) String() string {
	switch f {
	case ThumbnailPNG:
		return "png"
	case ThumbnailJPG:
		return "jpg"
	case ThumbnailQOI:
		return "qoi"
	default:
		return "unknown"
	}
}

// Label returns the marker label used in the ascii gcode thumbnail
// section. Unknown formats map to the PNG label; downstream consumers
// treat unlabeled thumbnails as PNG.
func (f ThumbnailFormat) Label() string {
	switch f {
	case ThumbnailJPG:
		return "thumbnail_JPG"
	case ThumbnailQOI:
		return "thumbnail_QOI"
	default:
		return "thumbnail"
	}
}

// ChecksumType identifies the per-block checksum algorithm declared in
// the file header.
type ChecksumType uint16

// Checksum types per FORMAT.md.
const (
	ChecksumNone  ChecksumType = 0
	ChecksumCRC32 ChecksumType = 1
)

// String returns a human-readable name for logs and CLI output.
func (c ChecksumType) String() string {
	switch c {
	case ChecksumNone:
		return "none"
	case ChecksumCRC32:
		return "crc32"
	default:
		return fmt.Sprintf("unknown(%d)", uint16(c))
	}
}

// Size returns the on-disk size in bytes of one checksum value.
func (c ChecksumType) Size() int64 {
	if c == ChecksumCRC32 {
		return 4
	}
	return 0
}

// MetadataPair is one key/value entry of a metadata block payload.
// Entries are ordered and keys are not required to be unique; lookups
// take the first match.
type MetadataPair struct {
	Key   string `msgpack:"key" json:"key"`
	Value string `msgpack:"value" json:"value"`
}
