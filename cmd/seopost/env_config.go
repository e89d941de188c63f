package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-seopost/internal/config"
)

const envPrefix = "SEOPOST_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // SEOPOST_CONFIG: config file name or path
	Style      string        // SEOPOST_STYLE: style name or CSS path
	Timeout    time.Duration // SEOPOST_TIMEOUT: PDF page load timeout
	OutputDir  string        // SEOPOST_OUTPUT_DIR: default output directory
	AuthorName string        // SEOPOST_AUTHOR_NAME: schema author
	BlogDate   string        // SEOPOST_BLOG_DATE: "auto", "auto:FORMAT" or literal
	Addr       string        // SEOPOST_ADDR: preview server address
	Workers    int           // SEOPOST_WORKERS: parallel workers
	LogLevel   string        // SEOPOST_LOG_LEVEL: none, normal, debug
}

// knownEnvVars lists valid SEOPOST_* environment variables.
var knownEnvVars = map[string]bool{
	"SEOPOST_CONFIG":      true,
	"SEOPOST_STYLE":       true,
	"SEOPOST_TIMEOUT":     true,
	"SEOPOST_OUTPUT_DIR":  true,
	"SEOPOST_AUTHOR_NAME": true,
	"SEOPOST_BLOG_DATE":   true,
	"SEOPOST_ADDR":        true,
	"SEOPOST_WORKERS":     true,
	"SEOPOST_LOG_LEVEL":   true,
}

// loadEnvConfig reads the recognized SEOPOST_* variables.
// Unparsable or non-positive timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SEOPOST_CONFIG"),
		Style:      os.Getenv("SEOPOST_STYLE"),
		OutputDir:  os.Getenv("SEOPOST_OUTPUT_DIR"),
		AuthorName: os.Getenv("SEOPOST_AUTHOR_NAME"),
		BlogDate:   os.Getenv("SEOPOST_BLOG_DATE"),
		Addr:       os.Getenv("SEOPOST_ADDR"),
		LogLevel:   os.Getenv("SEOPOST_LOG_LEVEL"),
	}

	if timeout := os.Getenv("SEOPOST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := os.Getenv("SEOPOST_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars reports unrecognized SEOPOST_* variables, sorted.
// Catches typos like SEOPOST_AUTHOR instead of SEOPOST_AUTHOR_NAME.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Flags are merged afterwards, giving flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout.String()
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AuthorName != "" {
		cfg.Blog.Author = env.AuthorName
	}
	if env.BlogDate != "" {
		cfg.Blog.Date = env.BlogDate
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
}
