package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	seopost "github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("post source must have .txt, .md or .post extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// sourceExtensions lists the extensions picked up from directories.
var sourceExtensions = map[string]bool{".txt": true, ".md": true, ".post": true}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the post sources under each input, naturally sorted
// per input so post2 comes before post10.
func discoverFiles(inputs []string, outputDir, extension string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		found, err := discoverInput(input, outputDir, extension, len(inputs) == 1)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func discoverInput(inputPath, outputDir, extension string, single bool) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateSourceExtension(inputPath); err != nil {
			return nil, err
		}
		if single && strings.HasSuffix(strings.ToLower(outputDir), "."+extension) {
			return []FileToConvert{{InputPath: inputPath, OutputPath: outputDir}}, nil
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "", extension)
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var paths []string
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(natural.StringSlice(paths))

	files := make([]FileToConvert, 0, len(paths))
	for _, path := range paths {
		outPath, err := resolveOutputPath(path, outputDir, inputPath, extension)
		if err != nil {
			return nil, err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
	}
	return files, nil
}

// resolveOutputPath determines the output path for a post source. Files
// found under baseInputDir keep their relative directory inside outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir, extension string) (string, error) {
	dir := outputDir
	if dir != "" && baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			dir = filepath.Join(outputDir, filepath.Dir(rel))
		}
	}
	return fileutil.OutputPath(inputPath, dir, "", extension)
}

func validateSourceExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !sourceExtensions[ext] {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > seopost.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, seopost.MaxPoolSize)
	}
	return nil
}

// extensionFor returns the output file extension of a format.
func extensionFor(format string) string {
	if format == seopost.FormatPDF {
		return "pdf"
	}
	return "html"
}
