package convert

import (
	"encoding/base64"
	"fmt"

	"github.com/pithecene-io/bgc/bgcode"
)

// thumbnailRowLength caps the width of a base64 comment line. The ascii
// form is line-oriented and base64 carries no newlines, so the renderer
// inserts them.
const thumbnailRowLength = 78

// writeThumbnail renders one thumbnail block: a begin marker carrying the
// format label, dimensions, and encoded length, the base64 text wrapped
// into fixed-width comment lines, and an end marker. A final remainder
// row shorter than the cap is emitted only when non-empty.
func writeThumbnail(w *lineWriter, t bgcode.Thumbnail) error {
	encoded := base64.StdEncoding.EncodeToString(t.Data)
	label := t.Format.Label()

	begin := fmt.Sprintf("\n;\n; %s begin %dx%d %d\n", label, t.Width, t.Height, len(encoded))
	if err := w.writeString(begin); err != nil {
		return err
	}
	if err := writeEncodedRows(w, encoded); err != nil {
		return err
	}
	return w.writeString("; " + label + " end\n;\n")
}

// writeEncodedRows splits the base64 text into fixed-width comment rows.
// The final, possibly shorter, remainder row is emitted only when
// non-empty.
func writeEncodedRows(w *lineWriter, encoded string) error {
	for len(encoded) > thumbnailRowLength {
		if err := w.writeString("; " + encoded[:thumbnailRowLength] + "\n"); err != nil {
			return err
		}
		encoded = encoded[thumbnailRowLength:]
	}
	if len(encoded) > 0 {
		if err := w.writeString("; " + encoded + "\n"); err != nil {
			return err
		}
	}
	return nil
}
