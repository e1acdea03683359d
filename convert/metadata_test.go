package convert

import (
	"bytes"
	"testing"

	"github.com/pithecene-io/bgc/types"
)

func TestProducer(t *testing.T) {
	cases := []struct {
		name    string
		entries []types.MetadataPair
		want    string
	}{
		{
			"present",
			[]types.MetadataPair{{Key: "Producer", Value: "MySlicer 1.0"}},
			"MySlicer 1.0",
		},
		{
			"absent",
			[]types.MetadataPair{{Key: "Version", Value: "1"}},
			"Unknown",
		},
		{"empty", nil, "Unknown"},
		{
			// Duplicate keys are legal; the first match wins.
			"first match wins",
			[]types.MetadataPair{
				{Key: "Producer", Value: "First"},
				{Key: "Producer", Value: "Second"},
			},
			"First",
		},
		{
			// Key match is exact, not case-insensitive.
			"case sensitive",
			[]types.MetadataPair{{Key: "producer", Value: "lower"}},
			"Unknown",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := producer(c.entries); got != c.want {
				t.Errorf("producer() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestWriteBanner(t *testing.T) {
	var buf bytes.Buffer
	w := newLineWriter(&buf)

	entries := []types.MetadataPair{{Key: "Producer", Value: "MySlicer 1.0"}}
	if err := writeBanner(w, entries); err != nil {
		t.Fatalf("writeBanner failed: %v", err)
	}
	if got, want := buf.String(), "; generated by MySlicer 1.0\n\n\n"; got != want {
		t.Errorf("banner = %q, want %q", got, want)
	}
}

func TestWriteMetadata_PreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	w := newLineWriter(&buf)

	entries := []types.MetadataPair{
		{Key: "b", Value: "2"},
		{Key: "a", Value: "1"},
		{Key: "b", Value: "3"},
	}
	if err := writeMetadata(w, entries); err != nil {
		t.Fatalf("writeMetadata failed: %v", err)
	}
	if got, want := buf.String(), "; b = 2\n; a = 1\n; b = 3\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
