package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-seopost/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength    = 200  // Blog title and schema headline
	MaxNameLength     = 100  // Author name
	MaxDateLength     = 30   // "2025-12-31" or "auto:DD/MM/YYYY"
	MaxURLLength      = 2048 // Browser limit
	MaxKeywordLength  = 100  // Image keyword
	MaxPathLength     = 4096 // Filesystem path
	MaxAddrLength     = 255  // host:port
	MaxImageURLs      = 500  // Entries in images.urls
	MaxCORSOrigins    = 50   // Entries in server.corsOrigins
	maxDurationLength = 20
)

// Output formats.
const (
	FormatFragment = "fragment"
	FormatStyled   = "styled"
	FormatDocument = "document"
	FormatPDF      = "pdf"
)

// Log levels, matching internal/logging.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// Defaults applied by DefaultConfig.
const (
	DefaultFormat     = FormatDocument
	DefaultPageSize   = "letter"
	DefaultPDFTimeout = 30 * time.Second
	DefaultAddr       = "127.0.0.1:8080"
)

// Config holds all configuration for post generation.
type Config struct {
	Blog    BlogConfig    `yaml:"blog"`
	Render  RenderConfig  `yaml:"render"`
	Images  ImagesConfig  `yaml:"images"`
	Output  OutputConfig  `yaml:"output"`
	Style   string        `yaml:"style"` // Name in internal/assets/styles/ or a CSS file path
	Assets  AssetsConfig  `yaml:"assets"`
	PDF     PDFConfig     `yaml:"pdf"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// BlogConfig feeds the schema and document title.
type BlogConfig struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   string `yaml:"date"` // "auto", "auto:FORMAT" or a literal date
}

// RenderConfig toggles optional output blocks. Nil pointers mean enabled.
type RenderConfig struct {
	IncludeSchema    *bool `yaml:"includeSchema"`
	IncludeImages    *bool `yaml:"includeImages"`
	IncludeFAQSchema bool  `yaml:"includeFAQSchema"`
}

// ImagesConfig maps image keywords to uploaded URLs.
// Files are image map YAML files merged before URLs.
type ImagesConfig struct {
	Featured string            `yaml:"featured"`
	URLs     map[string]string `yaml:"urls"`
	Files    []string          `yaml:"files"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Format     string `yaml:"format"`     // fragment, styled, document, pdf
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PDFConfig defines PDF export settings.
type PDFConfig struct {
	PageSize string `yaml:"pageSize"` // letter, a4, legal
	Timeout  string `yaml:"timeout"`  // Go duration, e.g. "30s"
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level"` // none, normal, debug
}

// ServerConfig defines preview server options.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	Strict      bool     `yaml:"strict"` // Reject invalid documents with 422
	CORSOrigins []string `yaml:"corsOrigins"`
}

// TimeoutDuration parses PDF.Timeout, falling back to DefaultPDFTimeout
// when unset. Call Validate first to surface parse errors.
func (c *Config) TimeoutDuration() time.Duration {
	if c.PDF.Timeout == "" {
		return DefaultPDFTimeout
	}
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil || d <= 0 {
		return DefaultPDFTimeout
	}
	return d
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for callers that build
// a Config by hand (API adapters, library users).
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"blog.title", c.Blog.Title, MaxTitleLength},
		{"blog.author", c.Blog.Author, MaxNameLength},
		{"blog.date", c.Blog.Date, MaxDateLength},
		{"images.featured", c.Images.Featured, MaxURLLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"style", c.Style, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"pdf.timeout", c.PDF.Timeout, maxDurationLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if len(c.Images.URLs) > MaxImageURLs {
		return fmt.Errorf("%w: images.urls has %d entries (max %d)", ErrInvalidValue, len(c.Images.URLs), MaxImageURLs)
	}
	for kw, u := range c.Images.URLs {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: images.urls: empty keyword", ErrInvalidValue)
		}
		if err := validateFieldLength("images.urls keyword", kw, MaxKeywordLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("images.urls[%s]", kw), u, MaxURLLength); err != nil {
			return err
		}
	}
	for i, f := range c.Images.Files {
		if err := validateFieldLength(fmt.Sprintf("images.files[%d]", i), f, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Output.Format != "" && !IsFormat(c.Output.Format) {
		return fmt.Errorf("%w: output.format %q (must be fragment, styled, document, or pdf)", ErrInvalidValue, c.Output.Format)
	}
	if c.PDF.PageSize != "" {
		switch strings.ToLower(c.PDF.PageSize) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: pdf.pageSize %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.PageSize)
		}
	}
	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil {
			return fmt.Errorf("%w: pdf.timeout %q: %v", ErrInvalidValue, c.PDF.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidValue, d)
		}
	}
	if c.Logging.Level != "" {
		switch c.Logging.Level {
		case LevelNone, LevelNormal, LevelDebug:
		default:
			return fmt.Errorf("%w: logging.level %q (must be none, normal, or debug)", ErrInvalidValue, c.Logging.Level)
		}
	}

	if len(c.Server.CORSOrigins) > MaxCORSOrigins {
		return fmt.Errorf("%w: server.corsOrigins has %d entries (max %d)", ErrInvalidValue, len(c.Server.CORSOrigins), MaxCORSOrigins)
	}
	for i, o := range c.Server.CORSOrigins {
		if err := validateFieldLength(fmt.Sprintf("server.corsOrigins[%d]", i), o, MaxURLLength); err != nil {
			return err
		}
	}

	return nil
}

// IsFormat reports whether s names an output format.
func IsFormat(s string) bool {
	switch s {
	case FormatFragment, FormatStyled, FormatDocument, FormatPDF:
		return true
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output:  OutputConfig{Format: DefaultFormat},
		PDF:     PDFConfig{PageSize: DefaultPageSize, Timeout: DefaultPDFTimeout.String()},
		Logging: LoggingConfig{Level: LevelNormal},
		Server:  ServerConfig{Addr: DefaultAddr},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Unset fields take DefaultConfig values and an empty file yields the
// defaults. Returns error if the file is not
// found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFile(configPath, cfg); err != nil && !errors.Is(err, yamlutil.ErrEmptyInput) {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, yamlutil.Describe(err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-seopost/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-seopost", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
