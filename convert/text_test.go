package convert

import (
	"bytes"
	"testing"
)

func TestTrimHorizontal(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{" ", ""},
		{"\t", ""},
		{"  \t  ", ""},
		{"G1", "G1"},
		{";", ";"},
		{" G1 X1 ", "G1 X1"},
		{"\tG1\t", "G1"},
		// Only horizontal whitespace is trimmed.
		{"\rG1\r", "\rG1\r"},
		// Single-character lines must not trip bounds.
		{"a", "a"},
		{" a", "a"},
	}
	for _, c := range cases {
		if got := trimHorizontal(c.in); got != c.want {
			t.Errorf("trimHorizontal(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUncomment(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{";", ""},
		{"; ", ""},
		{";\t", ""},
		{"; comment", "comment"},
		{";; nested", "; nested"},
		{"G1 X1", "G1 X1"},
		{"G1 X1 ; trailing", "G1 X1 ; trailing"},
	}
	for _, c := range cases {
		if got := uncomment(c.in); got != c.want {
			t.Errorf("uncomment(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestKeepLine(t *testing.T) {
	cases := []struct {
		line string
		keep bool
	}{
		{"", false},
		{"   ", false},
		{";", false},
		{" ; ", false},
		{"; comment only", true}, // meaningful comment survives
		{";   ", false},
		{"G1 X1", true},
		{"G1 X2 ; trailing", true},
		{"  G1 X3  ", true},
	}
	for _, c := range cases {
		if got := keepLine(c.line); got != c.keep {
			t.Errorf("keepLine(%q) = %v, want %v", c.line, got, c.keep)
		}
	}
}

func TestWriteInstructions(t *testing.T) {
	cases := []struct {
		name    string
		blob    string
		want    string
		kept    int64
		dropped int64
	}{
		{
			name:    "mixed blob",
			blob:    "G1 X1\n;\n   \nG1 X2 ; trailing\n",
			want:    "G1 X1\nG1 X2 ; trailing\n",
			kept:    2,
			dropped: 2,
		},
		{
			name:    "meaningful comment kept verbatim",
			blob:    "; TYPE:Skirt\nG1 X1\n",
			want:    "; TYPE:Skirt\nG1 X1\n",
			kept:    2,
			dropped: 0,
		},
		{
			name:    "no trailing newline on final line",
			blob:    "G1 X1\nG1 X2",
			want:    "G1 X1\nG1 X2\n",
			kept:    2,
			dropped: 0,
		},
		{
			name:    "all noise",
			blob:    "\n\n;\n ; \n",
			want:    "",
			kept:    0,
			dropped: 4,
		},
		{
			name: "empty blob",
			blob: "",
			want: "",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			var stats Stats
			if err := writeInstructions(newLineWriter(&buf), c.blob, &stats); err != nil {
				t.Fatalf("writeInstructions failed: %v", err)
			}
			if got := buf.String(); got != c.want {
				t.Errorf("output = %q, want %q", got, c.want)
			}
			if stats.LinesKept != c.kept {
				t.Errorf("LinesKept = %d, want %d", stats.LinesKept, c.kept)
			}
			if stats.LinesDropped != c.dropped {
				t.Errorf("LinesDropped = %d, want %d", stats.LinesDropped, c.dropped)
			}
		})
	}
}
