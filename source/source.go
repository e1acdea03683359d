// Package source opens conversion inputs from local paths or S3 URIs.
//
// S3 objects are fetched whole into memory: the conversion walks the
// input with seeks (including one backtrack), so a streaming body is not
// enough. Binary gcode files are print-sized, not dataset-sized, which
// keeps this acceptable.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pithecene-io/bgc/iox"
)

// s3Scheme prefixes S3 input URIs.
const s3Scheme = "s3://"

// S3Options configures S3 access for s3:// inputs.
type S3Options struct {
	// Region is the AWS region (optional, uses the default chain if empty).
	Region string
	// Endpoint is a custom S3 endpoint URL for S3-compatible providers
	// (e.g. Cloudflare R2, MinIO). Empty uses the default AWS endpoint.
	Endpoint string
	// UsePathStyle forces path-style addressing (bucket in path, not
	// subdomain). Required by most S3-compatible providers.
	UsePathStyle bool
}

// IsS3 reports whether path names an S3 object.
func IsS3(path string) bool {
	return strings.HasPrefix(path, s3Scheme)
}

// ParseS3URI splits an s3://bucket/key URI.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q: want s3://bucket/key", uri)
	}
	return bucket, key, nil
}

// Open returns a seekable reader over the named input: a local file, or
// an S3 object fetched into memory when path starts with s3://.
func Open(ctx context.Context, path string, opts S3Options) (io.ReadSeekCloser, error) {
	if IsS3(path) {
		return openS3(ctx, path, opts)
	}
	return os.Open(path)
}

// openS3 fetches an S3 object and wraps it in an in-memory reader.
// Uses the AWS SDK default credential chain (env vars, shared config,
// IAM role).
func openS3(ctx context.Context, uri string, opts S3Options) (io.ReadSeekCloser, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if opts.Endpoint != "" {
		endpoint := opts.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
		})
	}
	if opts.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	client := s3.NewFromConfig(awsConfig, s3Opts...)

	obj, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	defer iox.DiscardClose(obj.Body)

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	return NewMemoryInput(data), nil
}

// MemoryInput is a seekable, closable reader over an in-memory object.
type MemoryInput struct {
	*bytes.Reader
}

// NewMemoryInput wraps data.
func NewMemoryInput(data []byte) *MemoryInput {
	return &MemoryInput{Reader: bytes.NewReader(data)}
}

// Close is a no-op; the backing buffer is garbage collected.
func (*MemoryInput) Close() error { return nil }
