// Package config handles YAML config file loading for the bgc CLI.
package config

import (
	"github.com/pithecene-io/bgc/source"
)

// Config represents a bgc.yaml configuration file.
// All values are optional and act as defaults for CLI flags; flags
// always override config values.
type Config struct {
	// Verify controls checksum verification. A pointer distinguishes
	// "unset" (default on) from an explicit false.
	Verify *bool `yaml:"verify"`
	// Format is the default output format for read-only commands:
	// json, table, or yaml.
	Format string `yaml:"format"`
	// NoColor disables colored table output.
	NoColor bool `yaml:"no_color"`
	// S3 holds access defaults for s3:// inputs.
	S3 S3Config `yaml:"s3"`
}

// S3Config holds S3 access defaults from the config file.
type S3Config struct {
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	UsePathStyle bool   `yaml:"path_style"`
}

// SourceOptions converts the S3 defaults into source options.
func (c *Config) SourceOptions() source.S3Options {
	return source.S3Options{
		Region:       c.S3.Region,
		Endpoint:     c.S3.Endpoint,
		UsePathStyle: c.S3.UsePathStyle,
	}
}

// VerifyDefault resolves the verify setting; verification is on unless
// the config file disables it.
func (c *Config) VerifyDefault() bool {
	if c.Verify == nil {
		return true
	}
	return *c.Verify
}
