package convert

import "strings"

// Pure text helpers for the instruction-stream renderer. All of them
// return subslices of their input; the source text is never mutated.

// trimHorizontal returns s without leading and trailing spaces and tabs.
// Newlines and other whitespace are untouched: instruction lines arrive
// already split, and vertical whitespace is significant elsewhere.
func trimHorizontal(s string) string {
	return strings.Trim(s, " \t")
}

// uncomment strips one leading comment marker and the horizontal
// whitespace after it. Text beyond the marker is preserved, so a comment
// that still carries content stays non-empty.
func uncomment(s string) string {
	if strings.HasPrefix(s, ";") {
		return trimHorizontal(s[1:])
	}
	return s
}

// keepLine reports whether an instruction line survives rendering.
// A line is dropped when, after trimming, it is empty, or when removing
// one comment marker and re-trimming leaves it empty. Instruction lines
// with trailing comments still carry content and are kept.
func keepLine(line string) bool {
	return uncomment(trimHorizontal(line)) != ""
}

// writeInstructions renders a gcode block payload: newline-delimited
// lines with blank and pure-comment lines removed, survivors emitted
// verbatim with a trailing newline. Counts land in stats.
func writeInstructions(w *lineWriter, blob string, stats *Stats) error {
	for len(blob) > 0 {
		line := blob
		if i := strings.IndexByte(blob, '\n'); i >= 0 {
			line = blob[:i]
			blob = blob[i+1:]
		} else {
			blob = ""
		}

		if !keepLine(line) {
			stats.LinesDropped++
			continue
		}
		if err := w.writeString(line + "\n"); err != nil {
			return err
		}
		stats.LinesKept++
	}
	return nil
}
