package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Format != FormatDocument {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, FormatDocument)
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Style != "" {
		t.Errorf("Style = %q, want empty", cfg.Style)
	}
	if cfg.PDF.PageSize != DefaultPageSize {
		t.Errorf("PDF.PageSize = %q, want %q", cfg.PDF.PageSize, DefaultPageSize)
	}
	if cfg.TimeoutDuration() != DefaultPDFTimeout {
		t.Errorf("TimeoutDuration() = %v, want %v", cfg.TimeoutDuration(), DefaultPDFTimeout)
	}
	if cfg.Logging.Level != LevelNormal {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, LevelNormal)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Render.IncludeSchema != nil || cfg.Render.IncludeImages != nil {
		t.Error("render toggles should be unset so they default to enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(c *Config)
		wantErr  error
		wantText string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name: "full valid config",
			mutate: func(c *Config) {
				c.Blog = BlogConfig{Title: "Brew Better Coffee", Author: "Sam", Date: "auto:DD/MM/YYYY"}
				c.Images = ImagesConfig{
					Featured: "https://cdn.example.com/cover.jpg",
					URLs:     map[string]string{"hero": "https://cdn.example.com/h.png"},
					Files:    []string{"images.yaml"},
				}
				c.Output.Format = FormatPDF
				c.PDF = PDFConfig{PageSize: "A4", Timeout: "1m"}
				c.Logging.Level = LevelDebug
				c.Server.CORSOrigins = []string{"https://editor.example.com"}
			},
		},
		{
			name:     "title too long",
			mutate:   func(c *Config) { c.Blog.Title = strings.Repeat("x", MaxTitleLength+1) },
			wantErr:  ErrFieldTooLong,
			wantText: "blog.title",
		},
		{
			name:     "author too long",
			mutate:   func(c *Config) { c.Blog.Author = strings.Repeat("x", MaxNameLength+1) },
			wantErr:  ErrFieldTooLong,
			wantText: "blog.author",
		},
		{
			name:     "image url too long",
			mutate:   func(c *Config) { c.Images.URLs = map[string]string{"hero": strings.Repeat("x", MaxURLLength+1)} },
			wantErr:  ErrFieldTooLong,
			wantText: "images.urls[hero]",
		},
		{
			name:     "empty image keyword",
			mutate:   func(c *Config) { c.Images.URLs = map[string]string{" ": "https://x.com/a.png"} },
			wantErr:  ErrInvalidValue,
			wantText: "empty keyword",
		},
		{
			name:     "unknown format",
			mutate:   func(c *Config) { c.Output.Format = "markdown" },
			wantErr:  ErrInvalidValue,
			wantText: "output.format",
		},
		{
			name:     "unknown page size",
			mutate:   func(c *Config) { c.PDF.PageSize = "tabloid" },
			wantErr:  ErrInvalidValue,
			wantText: "pdf.pageSize",
		},
		{
			name:     "bad timeout",
			mutate:   func(c *Config) { c.PDF.Timeout = "soon" },
			wantErr:  ErrInvalidValue,
			wantText: "pdf.timeout",
		},
		{
			name:     "negative timeout",
			mutate:   func(c *Config) { c.PDF.Timeout = "-5s" },
			wantErr:  ErrInvalidValue,
			wantText: "positive",
		},
		{
			name:     "unknown log level",
			mutate:   func(c *Config) { c.Logging.Level = "trace" },
			wantErr:  ErrInvalidValue,
			wantText: "logging.level",
		},
		{
			name: "too many cors origins",
			mutate: func(c *Config) {
				c.Server.CORSOrigins = make([]string, MaxCORSOrigins+1)
			},
			wantErr:  ErrInvalidValue,
			wantText: "server.corsOrigins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{timeout: "", want: DefaultPDFTimeout},
		{timeout: "45s", want: 45 * time.Second},
		{timeout: "garbage", want: DefaultPDFTimeout},
		{timeout: "0s", want: DefaultPDFTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{PDF: PDFConfig{Timeout: tt.timeout}}
			if got := cfg.TimeoutDuration(); got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFormat(t *testing.T) {
	t.Parallel()

	for _, f := range []string{FormatFragment, FormatStyled, FormatDocument, FormatPDF} {
		if !IsFormat(f) {
			t.Errorf("IsFormat(%q) = false", f)
		}
	}
	for _, f := range []string{"", "html", "Document"} {
		if IsFormat(f) {
			t.Errorf("IsFormat(%q) = true", f)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path merges over defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "blog.yaml")
		writeFile(t, path, `
blog:
  title: Brew Better Coffee
  author: Sam
render:
  includeSchema: false
  includeFAQSchema: true
images:
  urls:
    hero: https://cdn.example.com/h.png
pdf:
  pageSize: a4
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Blog.Title != "Brew Better Coffee" || cfg.Blog.Author != "Sam" {
			t.Errorf("Blog = %+v", cfg.Blog)
		}
		if cfg.Render.IncludeSchema == nil || *cfg.Render.IncludeSchema {
			t.Error("Render.IncludeSchema should be explicitly false")
		}
		if cfg.Render.IncludeImages != nil {
			t.Error("Render.IncludeImages should stay unset")
		}
		if !cfg.Render.IncludeFAQSchema {
			t.Error("Render.IncludeFAQSchema = false, want true")
		}
		if cfg.Images.URLs["hero"] != "https://cdn.example.com/h.png" {
			t.Errorf("Images.URLs = %v", cfg.Images.URLs)
		}
		if cfg.PDF.PageSize != "a4" {
			t.Errorf("PDF.PageSize = %q", cfg.PDF.PageSize)
		}
		if cfg.Output.Format != DefaultFormat {
			t.Errorf("Output.Format = %q, want default %q", cfg.Output.Format, DefaultFormat)
		}
		if cfg.Server.Addr != DefaultAddr {
			t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
		}
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "empty.yaml")
		writeFile(t, path, "")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Output.Format != DefaultFormat {
			t.Errorf("Output.Format = %q", cfg.Output.Format)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "typo.yaml")
		writeFile(t, path, "blog:\n  titel: Oops\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Fatalf("error = %v, want ErrConfigParse", err)
		}
		if !strings.Contains(err.Error(), "titel") {
			t.Errorf("error should point at the key: %v", err)
		}
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		writeFile(t, path, "output:\n  format: markdown\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("name resolved in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "work.yml"), "style: minimal\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Style != "minimal" {
			t.Errorf("Style = %q, want minimal", cfg.Style)
		}
	})

	t.Run("yaml extension preferred over yml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "both.yaml"), "style: from-yaml\n")
		writeFile(t, filepath.Join(dir, "both.yml"), "style: from-yml\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("both")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Style != "from-yaml" {
			t.Errorf("Style = %q, want from-yaml", cfg.Style)
		}
	})

	t.Run("name not found lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("absent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "absent.yaml") || !strings.Contains(err.Error(), "absent.yml") {
			t.Errorf("error should list tried paths: %v", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "work", want: false},
		{input: "./work.yaml", want: true},
		{input: "configs/work.yaml", want: true},
		{input: `C:\configs\work.yaml`, want: true},
	}

	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
