package source

import (
	"strings"

	"github.com/pkg/errors"
)

// StdinPath is the location that selects standard input.
const StdinPath = "-"

// Config holds all information needed to read an input file.
type Config struct {
	Path        string
	Compression CompressionMode
}

// CompressionMode configures if input data is decompressed.
type CompressionMode uint

// Constants for the different compression modes.
const (
	CompressionAuto    CompressionMode = 0
	CompressionOff     CompressionMode = 1
	CompressionZstd    CompressionMode = 2
	CompressionInvalid CompressionMode = 3
)

func (c CompressionMode) String() string {
	switch c {
	case CompressionAuto:
		return "auto"
	case CompressionOff:
		return "off"
	case CompressionZstd:
		return "zstd"
	}
	return "invalid"
}

// ParseCompression converts "auto", "off" or "zstd" to a CompressionMode.
func ParseCompression(s string) (CompressionMode, error) {
	switch s {
	case "auto", "":
		return CompressionAuto, nil
	case "off":
		return CompressionOff, nil
	case "zstd":
		return CompressionZstd, nil
	}
	return CompressionInvalid, errors.Errorf("invalid compression mode %q, want auto, off or zstd", s)
}

// NewConfig returns a new config with default options applied.
func NewConfig() Config {
	return Config{
		Compression: CompressionAuto,
	}
}

// ParseConfig parses an input location. It accepts a plain path, a path
// with the prefix "file:", or "-" for standard input.
func ParseConfig(s string) (*Config, error) {
	s = strings.TrimPrefix(s, "file:")
	if s == "" {
		return nil, errors.New("invalid format, empty input path")
	}

	cfg := NewConfig()
	cfg.Path = s
	return &cfg, nil
}

// IsStdin reports whether the config selects standard input.
func (cfg Config) IsStdin() bool {
	return cfg.Path == StdinPath
}
