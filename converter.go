package seopost

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/alnah/go-seopost/internal/assets"
	"github.com/alnah/go-seopost/internal/parser"
	"github.com/alnah/go-seopost/internal/pdf"
	"github.com/alnah/go-seopost/internal/render"
	"github.com/alnah/go-seopost/internal/rules"
)

// fallbackSlug names posts whose title yields no slug characters.
const fallbackSlug = "post"

// Converter parses marker text and produces HTML or PDF output.
// Create with NewConverter, call Close when done.
type Converter struct {
	cfg       converterConfig
	logger    *zap.Logger
	generator *render.Generator

	mu       sync.Mutex // serializes renderer use
	renderer pdf.Renderer
}

// NewConverter creates a Converter. The embedded default style is used
// unless WithStyle says otherwise.
// Returns an error if the asset path or the style cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:    defaultTimeout,
			styleInput: assets.DefaultStyleName,
			now:        time.Now,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	css, err := resolver.Resolve(c.cfg.styleInput)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", c.cfg.styleInput, err)
	}

	c.generator = render.New(render.WithClock(c.cfg.now), render.WithCSS(css))
	if c.renderer == nil {
		c.renderer = pdf.NewRodRenderer(c.cfg.timeout)
	}
	return c, nil
}

// Convert parses input.Text and renders it in input.Format.
// Parse warnings never fail a conversion; inspect Result.Document.Metadata.
// Recovers from internal panics so they do not reach callers.
func (c *Converter) Convert(ctx context.Context, input Input) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	format := input.Format
	if format == "" {
		format = FormatDocument
	}
	if !IsFormat(format) {
		return nil, fmt.Errorf("%w: %q (must be fragment, styled, document, or pdf)", ErrInvalidFormat, input.Format)
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := parser.Parse(input.Text)
	c.logger.Debug("parsed document",
		zap.Int("sections", doc.Metadata.TotalSections),
		zap.Int("words", doc.Metadata.TotalWords),
		zap.Bool("valid", doc.Metadata.IsValid),
		zap.Int("warnings", len(doc.Metadata.Warnings)),
	)

	var html string
	switch format {
	case FormatFragment:
		html = c.generator.HTML(doc, input.Options)
	case FormatStyled:
		html = c.generator.StyledHTML(doc, input.Options)
	default:
		html = c.generator.Document(doc, input.Options)
	}

	res = &Result{
		Document:      doc,
		HTML:          html,
		Slug:          Slug(doc, input.Options),
		ImageKeywords: doc.ImageKeywords(),
	}
	c.logger.Debug("generated html", zap.String("format", format), zap.Int("bytes", len(html)))

	if format != FormatPDF {
		return res, nil
	}

	data, err := c.renderPDF(ctx, html, input.PageSize)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = data
	return res, nil
}

func (c *Converter) renderPDF(ctx context.Context, html, pageSize string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderer.Render(ctx, html, &pdf.Options{PageSize: pageSize})
}

// Close releases the headless browser, if one was started.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

// Slug derives a URL slug from the blog title, falling back to the hero
// text and then to "post".
func Slug(doc *Document, opts Options) string {
	title := opts.BlogTitle
	if strings.TrimSpace(title) == "" {
		if hero, ok := doc.Section(rules.Hero); ok {
			title = hero.RawContent
		}
	}
	if s := slug.Make(title); s != "" {
		return s
	}
	return fallbackSlug
}
