package seopost

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-seopost/internal/compose"
	"github.com/alnah/go-seopost/internal/parser"
	"github.com/alnah/go-seopost/internal/pdf"
	"github.com/alnah/go-seopost/internal/render"
	"github.com/alnah/go-seopost/internal/rules"
)

// Parsed document types.
type (
	Document       = parser.Document
	Section        = parser.Section
	ImageReference = parser.ImageReference
	Metadata       = parser.Metadata
)

// Rule table types.
type (
	SectionRule   = rules.SectionRule
	ImagePolicy   = rules.ImagePolicy
	ImagePosition = rules.ImagePosition
	SchemaType    = rules.SchemaType
)

// Options controls HTML generation. Nil IncludeSchema and IncludeImages mean
// enabled.
type Options = render.Options

// Form is the guided-form representation of a post.
type (
	Form        = compose.Form
	FormSection = compose.Section
)

// Bool returns a pointer to v, for Options fields.
func Bool(v bool) *bool {
	return render.Bool(v)
}

// Output formats.
const (
	FormatFragment = "fragment"
	FormatStyled   = "styled"
	FormatDocument = "document"
	FormatPDF      = "pdf"
)

// Page size constants for Input.PageSize.
const (
	PageSizeLetter = pdf.PageLetter
	PageSizeA4     = pdf.PageA4
	PageSizeLegal  = pdf.PageLegal
)

// Input contains conversion parameters.
type Input struct {
	Text     string  // Marker text (required)
	Format   string  // fragment, styled, document or pdf (default: document)
	Options  Options // Generation options
	PageSize string  // PDF only: letter, a4 or legal (default: letter)
}

// Result holds the products of one conversion.
type Result struct {
	Document      *Document
	HTML          string
	PDF           []byte // Set for FormatPDF only
	Slug          string
	ImageKeywords []string // Distinct, naturally sorted
}

// IsFormat reports whether s names an output format.
func IsFormat(s string) bool {
	switch s {
	case FormatFragment, FormatStyled, FormatDocument, FormatPDF:
		return true
	}
	return false
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings applied before NewConverter resolves assets.
type converterConfig struct {
	timeout    time.Duration
	styleInput string
	assetPath  string
	now        func() time.Time
}

// defaultTimeout bounds PDF page loads when no timeout is given.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF page load timeout.
// Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(fmt.Sprintf("seopost: WithTimeout duration must be positive, got %s", d))
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the stylesheet of styled and document outputs: an
// embedded or custom style name, or a path to a CSS file. An empty value
// disables the stylesheet.
func WithStyle(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = nameOrPath
	}
}

// WithAssetPath sets a directory whose styles/ folder overrides the
// embedded styles.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithClock sets the clock used for the schema date fallback.
// Panics if now is nil.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("seopost: WithClock requires a non-nil clock")
	}
	return func(c *Converter) {
		c.cfg.now = now
	}
}

// WithLogger sets the logger used for debug traces.
// Panics if l is nil; pass zap.NewNop() to silence.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("seopost: WithLogger requires a non-nil logger")
	}
	return func(c *Converter) {
		c.logger = l
	}
}
