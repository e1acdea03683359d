package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pithecene-io/bgc/bgcode"
	"github.com/pithecene-io/bgc/convert"
	"github.com/pithecene-io/bgc/types"
)

func TestReadOnlyFlags(t *testing.T) {
	flags := ReadOnlyFlags()

	names := map[string]bool{}
	for _, f := range flags {
		names[f.Names()[0]] = true
	}

	for _, want := range []string{"format", "no-color", "config"} {
		if !names[want] {
			t.Errorf("ReadOnlyFlags missing --%s", want)
		}
	}
}

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"print.bgcode", "print.gcode"},
		{"dir/print.bgcode", "dir/print.gcode"},
		{"print.bin", "print.bin.gcode"},
		{"print", "print.gcode"},
	}

	for _, tt := range tests {
		if got := deriveOutputPath(tt.input); got != tt.want {
			t.Errorf("deriveOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestConvertExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"checksum", &convert.Error{Kind: convert.ErrChecksum, Op: "x", Err: errors.New("boom")}, exitChecksum},
		{"write", &convert.Error{Kind: convert.ErrWrite, Op: "x", Err: errors.New("boom")}, exitWrite},
		{"sequence", &convert.Error{Kind: convert.ErrInvalidSequence, Op: "x", Err: errors.New("boom")}, exitFormat},
		{"plain", errors.New("boom"), exitFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertExitCode(tt.err); got != tt.want {
				t.Errorf("convertExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

// buildSample builds a minimal well-formed file in memory.
func buildSample(t *testing.T, checksum types.ChecksumType) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := bgcode.NewWriter(&buf, checksum)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	steps := []func() error{
		func() error {
			return w.WriteMetadataBlock(types.BlockFileMetadata, []types.MetadataPair{{Key: "Producer", Value: "TestSlicer"}})
		},
		func() error {
			return w.WriteMetadataBlock(types.BlockPrinterMetadata, []types.MetadataPair{{Key: "printer_model", Value: "MK4"}})
		},
		func() error {
			return w.WriteThumbnailBlock(types.ThumbnailPNG, 16, 9, []byte("imagedata"))
		},
		func() error { return w.WriteGCodeBlock("G1 X1\n") },
		func() error {
			return w.WriteMetadataBlock(types.BlockPrintMetadata, []types.MetadataPair{{Key: "filament used [g]", Value: "1.0"}})
		},
		func() error {
			return w.WriteMetadataBlock(types.BlockSlicerMetadata, []types.MetadataPair{{Key: "layer_height", Value: "0.2"}})
		},
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("write block %d: %v", i, err)
		}
	}

	return buf.Bytes()
}

func TestOpenOutput(t *testing.T) {
	t.Run("stdout passthrough", func(t *testing.T) {
		w, cleanup, err := openOutput("-")
		if err != nil {
			t.Fatalf("openOutput: %v", err)
		}
		if w != os.Stdout {
			t.Error("expected os.Stdout")
		}
		if err := cleanup(false); err != nil {
			t.Errorf("cleanup: %v", err)
		}
	})

	t.Run("kept on success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.gcode")
		w, cleanup, err := openOutput(path)
		if err != nil {
			t.Fatalf("openOutput: %v", err)
		}
		if _, err := w.Write([]byte("G1 X1\n")); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := cleanup(true); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(data) != "G1 X1\n" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("removed on failure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.gcode")
		_, cleanup, err := openOutput(path)
		if err != nil {
			t.Fatalf("openOutput: %v", err)
		}
		if err := cleanup(false); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("partial output should be removed")
		}
	})
}

func TestCheckFile(t *testing.T) {
	data := buildSample(t, types.ChecksumCRC32)

	resp := checkFile(bytes.NewReader(data), "sample.bgcode", true)
	if !resp.Valid {
		t.Fatalf("expected valid file, got error: %s", resp.Error)
	}
	if resp.Blocks != 6 {
		t.Errorf("Blocks = %d, want 6", resp.Blocks)
	}
	if resp.Version != bgcode.CurrentVersion {
		t.Errorf("Version = %d, want %d", resp.Version, bgcode.CurrentVersion)
	}
	if !resp.Verified {
		t.Error("Verified should be true")
	}
}

func TestCheckFileCorrupt(t *testing.T) {
	data := buildSample(t, types.ChecksumCRC32)
	data[len(data)-6] ^= 0xff

	resp := checkFile(bytes.NewReader(data), "sample.bgcode", true)
	if resp.Valid {
		t.Fatal("expected corruption to be detected")
	}
	if resp.Error == "" {
		t.Error("expected error message")
	}

	// Without verification the walk only reads headers and cannot see
	// the damage.
	resp = checkFile(bytes.NewReader(data), "sample.bgcode", false)
	if !resp.Valid {
		t.Fatalf("unverified walk should pass: %s", resp.Error)
	}
}

func TestCheckFileBadMagic(t *testing.T) {
	data := buildSample(t, types.ChecksumNone)
	data[0] = 'X'

	resp := checkFile(bytes.NewReader(data), "sample.bgcode", true)
	if resp.Valid {
		t.Fatal("expected bad magic to fail")
	}
}

func TestInspectFile(t *testing.T) {
	data := buildSample(t, types.ChecksumCRC32)

	resp, err := inspectFile(bytes.NewReader(data), "sample.bgcode")
	if err != nil {
		t.Fatalf("inspectFile: %v", err)
	}
	if len(resp.Blocks) != 6 {
		t.Fatalf("got %d blocks, want 6", len(resp.Blocks))
	}

	wantTypes := []string{
		"file metadata", "printer metadata", "thumbnail",
		"gcode", "print metadata", "slicer metadata",
	}
	for i, want := range wantTypes {
		if resp.Blocks[i].Type != want {
			t.Errorf("block %d type = %q, want %q", i, resp.Blocks[i].Type, want)
		}
	}

	thumb := resp.Blocks[2]
	if thumb.Format != "png" || thumb.Width != 16 || thumb.Height != 9 {
		t.Errorf("thumbnail info = %s %dx%d, want png 16x9", thumb.Format, thumb.Width, thumb.Height)
	}

	// Offsets are strictly increasing and start right after the file
	// header.
	if resp.Blocks[0].Offset != bgcode.FileHeaderSize {
		t.Errorf("first block offset = %d, want %d", resp.Blocks[0].Offset, bgcode.FileHeaderSize)
	}
	for i := 1; i < len(resp.Blocks); i++ {
		if resp.Blocks[i].Offset <= resp.Blocks[i-1].Offset {
			t.Errorf("block %d offset %d not after block %d offset %d",
				i, resp.Blocks[i].Offset, i-1, resp.Blocks[i-1].Offset)
		}
	}
}

func TestResponseRows(t *testing.T) {
	check := CheckResponse{Path: "a.bgcode", Version: 1, Checksum: "crc32", Blocks: 6, Verified: true, Valid: true}
	rows := check.Rows()
	if len(rows) != 6 {
		t.Errorf("CheckResponse.Rows() returned %d rows, want 6", len(rows))
	}

	check.Error = "bad magic"
	if rows := check.Rows(); len(rows) != 7 {
		t.Errorf("CheckResponse.Rows() with error returned %d rows, want 7", len(rows))
	}

	version := VersionResponse{Version: "0.2.0", Commit: "abc"}
	if rows := version.Rows(); len(rows) != 2 {
		t.Errorf("VersionResponse.Rows() returned %d rows, want 2", len(rows))
	}

	inspect := InspectResponse{
		Path: "a.bgcode",
		Blocks: []BlockInfo{
			{Index: 0, Type: "gcode", Offset: 10, PayloadSize: 5},
		},
	}
	rows = inspect.Rows()
	if len(rows) != 5 {
		t.Errorf("InspectResponse.Rows() returned %d rows, want 5", len(rows))
	}
	if rows[4][0] != "Block 0" {
		t.Errorf("block row label = %q, want %q", rows[4][0], "Block 0")
	}

	conv := ConvertResponse{Input: "a.bgcode", Output: "a.gcode", Stats: convert.Stats{Blocks: 6}}
	found := false
	for _, row := range conv.Rows() {
		if row[0] == "Blocks" && row[1] == "6" {
			found = true
		}
	}
	if !found {
		t.Error("ConvertResponse.Rows() missing Blocks row")
	}
}

func TestBuildSampleConverts(t *testing.T) {
	data := buildSample(t, types.ChecksumCRC32)

	var out bytes.Buffer
	stats, err := convert.BinaryToASCII(bytes.NewReader(data), &out, convert.Options{VerifyChecksums: true})
	if err != nil {
		t.Fatalf("BinaryToASCII: %v", err)
	}
	if stats.Producer != "TestSlicer" {
		t.Errorf("Producer = %q, want %q", stats.Producer, "TestSlicer")
	}
	if !bytes.Contains(out.Bytes(), []byte("G1 X1\n")) {
		t.Error("output missing instruction line")
	}
	if !bytes.Contains(out.Bytes(), []byte(fmt.Sprintf("; generated by %s", "TestSlicer"))) {
		t.Error("output missing banner")
	}
}
