package convert

import "github.com/pithecene-io/bgc/types"

// unknownProducer is the banner fallback when the file metadata block
// carries no Producer entry. Absence is not an error.
const unknownProducer = "Unknown"

// producer returns the value of the first Producer entry.
func producer(entries []types.MetadataPair) string {
	for _, e := range entries {
		if e.Key == "Producer" {
			return e.Value
		}
	}
	return unknownProducer
}

// writeBanner emits the generated-by banner from the file metadata
// entries, followed by two blank lines.
func writeBanner(w *lineWriter, entries []types.MetadataPair) error {
	return w.writeString("; generated by " + producer(entries) + "\n\n\n")
}

// writeMetadata emits one comment line per entry, preserving input order.
func writeMetadata(w *lineWriter, entries []types.MetadataPair) error {
	for _, e := range entries {
		if err := w.writeString("; " + e.Key + " = " + e.Value + "\n"); err != nil {
			return err
		}
	}
	return nil
}
