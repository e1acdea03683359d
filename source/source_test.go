package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pithecene-io/bgc/iox"
)

func TestIsS3(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"s3://bucket/key.bgcode", true},
		{"s3://bucket/a/b/c.bgcode", true},
		{"/tmp/file.bgcode", false},
		{"file.bgcode", false},
		{"S3://bucket/key", false}, // scheme is case-sensitive
	}
	for _, c := range cases {
		if got := IsS3(c.path); got != c.want {
			t.Errorf("IsS3(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://prints/batch/part.bgcode")
	if err != nil {
		t.Fatalf("ParseS3URI failed: %v", err)
	}
	if bucket != "prints" || key != "batch/part.bgcode" {
		t.Errorf("ParseS3URI = (%q, %q)", bucket, key)
	}

	for _, bad := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		if _, _, err := ParseS3URI(bad); err == nil {
			t.Errorf("ParseS3URI(%q) succeeded, want error", bad)
		}
	}
}

func TestOpen_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.bgcode")
	if err := os.WriteFile(path, []byte("GCDE payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	rs, err := Open(context.Background(), path, S3Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(iox.CloseFunc(rs))

	data, err := io.ReadAll(rs)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "GCDE payload" {
		t.Errorf("content = %q", data)
	}
}

func TestOpen_MissingLocalFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "absent"), S3Options{})
	if err == nil {
		t.Fatal("Open succeeded on a missing file")
	}
}

func TestMemoryInput_SeekAndReread(t *testing.T) {
	m := NewMemoryInput([]byte("0123456789"))

	if _, err := io.ReadAll(m); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Seek(4, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	rest, err := io.ReadAll(m)
	if err != nil {
		t.Fatal(err)
	}
	if string(rest) != "456789" {
		t.Errorf("re-read after seek = %q, want %q", rest, "456789")
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
