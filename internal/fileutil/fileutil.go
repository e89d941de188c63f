// Package fileutil provides input, output and path helpers for the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxInputSize bounds a single post source (10 MiB).
const MaxInputSize = 10 << 20

// Sentinel errors for file utility operations.
var (
	ErrInputTooLarge  = errors.New("input exceeds maximum size")
	ErrExtensionEmpty = errors.New("extension cannot be empty")
	ErrUnsafeName     = errors.New("name contains path separator or null byte")
)

// ReadInput reads a post source. Path "-" reads from stdin.
func ReadInput(path string, stdin io.Reader) (string, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path) // #nosec G304 -- path is user-provided
		if err != nil {
			return "", err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) > MaxInputSize {
		return "", fmt.Errorf("%w: %s (max %d bytes)", ErrInputTooLarge, path, MaxInputSize)
	}
	return string(data), nil
}

// OutputPath builds the destination for a converted post.
// The base name is name when set, otherwise the input file name without its
// extension. The directory is dir when set, otherwise the input's directory.
func OutputPath(input, dir, name, extension string) (string, error) {
	if extension == "" {
		return "", ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") || strings.ContainsAny(name, "/\\\x00") {
		return "", ErrUnsafeName
	}
	if name == "" {
		base := filepath.Base(input)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name+"."+strings.TrimPrefix(extension, ".")), nil
}

// WriteFileAtomic writes data to a temp file beside path and renames it
// into place, creating parent directories as needed.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".seopost-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil { // #nosec G302 -- output is meant to be shared
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// WriteTemp writes content to a new "seopost-*.<extension>" file in the
// system temp directory. The returned cleanup removes it.
func WriteTemp(content, extension string) (string, func(), error) {
	if extension == "" {
		return "", nil, ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return "", nil, ErrUnsafeName
	}

	f, err := os.CreateTemp("", "seopost-*."+strings.TrimPrefix(extension, "."))
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}
	return path, cleanup, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
// Examples:
//   - "default" -> false (name)
//   - "./brand.css" -> true (relative path)
//   - "C:\styles\brand.css" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
