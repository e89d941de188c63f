// Package render generates HTML from a parsed blog post document.
//
// Generation is pure: it reads the document and an Options value and
// returns a string. Every piece of user text is escaped before embedding;
// only validated markdown links reintroduce markup.
//
// Three output variants exist:
//   - HTML: a bare fragment for API previews
//   - StyledHTML: the fragment inside a styled div, for platforms that strip
//     <style> from <head>
//   - Document: a standalone HTML5 document for download or PDF export
package render

import (
	"strings"
	"time"

	"github.com/alnah/go-seopost/internal/parser"
	"github.com/alnah/go-seopost/internal/rules"
)

// fragmentSeparator joins top-level fragments.
const fragmentSeparator = "\n\n"

// dateLayout truncates the default publication date to the day.
const dateLayout = "2006-01-02"

// ContainerClass is the class of the StyledHTML wrapper div.
const ContainerClass = "seo-blog-post"

// containerStyle is inlined on the wrapper so the layout survives even when
// the embedded <style> block is stripped.
const containerStyle = "max-width:800px;margin:0 auto;font-family:Georgia,'Times New Roman',serif;line-height:1.7;color:#222;"

// Options controls a single generation call.
// Nil IncludeSchema and IncludeImages default to true.
type Options struct {
	IncludeSchema    *bool             `json:"includeSchema,omitempty" yaml:"includeSchema,omitempty"`
	IncludeImages    *bool             `json:"includeImages,omitempty" yaml:"includeImages,omitempty"`
	IncludeFAQSchema bool              `json:"includeFAQSchema,omitempty" yaml:"includeFAQSchema,omitempty"`
	BlogTitle        string            `json:"blogTitle,omitempty" yaml:"blogTitle,omitempty"`
	BlogDate         string            `json:"blogDate,omitempty" yaml:"blogDate,omitempty"`
	AuthorName       string            `json:"authorName,omitempty" yaml:"authorName,omitempty"`
	ImageURLs        map[string]string `json:"imageUrls,omitempty" yaml:"imageUrls,omitempty"`
	FeaturedImageURL string            `json:"featuredImageUrl,omitempty" yaml:"featuredImageUrl,omitempty"`
}

// Bool returns a pointer to v, for Options fields.
func Bool(v bool) *bool {
	return &v
}

// SchemaEnabled reports whether the BlogPosting block is emitted.
func (o Options) SchemaEnabled() bool {
	return o.IncludeSchema == nil || *o.IncludeSchema
}

// ImagesEnabled reports whether images are emitted.
func (o Options) ImagesEnabled() bool {
	return o.IncludeImages == nil || *o.IncludeImages
}

// Generator renders documents. The zero value is not usable; call New.
// A Generator is immutable and safe for concurrent use.
type Generator struct {
	now func() time.Time
	css string
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used for the default publication date.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("render: WithClock requires a non-nil clock")
	}
	return func(g *Generator) {
		g.now = now
	}
}

// WithCSS sets the stylesheet embedded by StyledHTML and Document.
func WithCSS(css string) Option {
	return func(g *Generator) {
		g.css = css
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// documentFAQs gathers the pairs of every FAQ section, duplicates included,
// so the schema matches what the sections render.
func documentFAQs(doc *parser.Document) []FAQ {
	var faqs []FAQ
	for i := range doc.Sections {
		if doc.Sections[i].ID == rules.FAQ {
			faqs = append(faqs, ExtractFAQs(doc.Sections[i].Lines)...)
		}
	}
	return faqs
}

// HTML renders doc as a bare fragment.
// Panics if doc is nil (programmer error).
func (g *Generator) HTML(doc *parser.Document, opts Options) string {
	if doc == nil {
		panic("render: nil document")
	}

	var fragments []string

	if opts.SchemaEnabled() {
		featured := ""
		if opts.ImagesEnabled() && IsValidURL(opts.FeaturedImageURL) {
			featured = strings.TrimSpace(opts.FeaturedImageURL)
		}
		date := opts.BlogDate
		if date == "" {
			date = g.now().Format(dateLayout)
		}
		fragments = append(fragments, blogPostingSchema(opts.BlogTitle, date, opts.AuthorName, featured))

		if opts.IncludeFAQSchema {
			if faq := faqPageSchema(documentFAQs(doc)); faq != "" {
				fragments = append(fragments, faq)
			}
		}
	}

	if opts.ImagesEnabled() && IsValidURL(opts.FeaturedImageURL) {
		alt := opts.BlogTitle
		if alt == "" {
			alt = "Featured image"
		}
		fragments = append(fragments, imageTag(strings.TrimSpace(opts.FeaturedImageURL), alt, featuredStyle))
	}

	c := &renderContext{opts: opts, images: opts.ImagesEnabled()}
	for i := range doc.Sections {
		s := &doc.Sections[i]
		render, ok := renderers[s.ID]
		if !ok {
			continue
		}
		if out := render(c, s); out != "" {
			fragments = append(fragments, out)
		}
	}

	return strings.Join(fragments, fragmentSeparator)
}

// StyledHTML renders doc inside a div carrying inline layout styles and,
// when configured, an embedded stylesheet.
func (g *Generator) StyledHTML(doc *parser.Document, opts Options) string {
	var b strings.Builder
	b.WriteString(`<div class="` + ContainerClass + `" style="` + containerStyle + `">` + "\n")
	if g.css != "" {
		b.WriteString("<style>\n" + sanitizeCSS(g.css) + "\n</style>\n")
	}
	b.WriteString(g.HTML(doc, opts))
	b.WriteString("\n</div>")
	return b.String()
}

// Document renders doc as a standalone HTML5 document.
func (g *Generator) Document(doc *parser.Document, opts Options) string {
	title := opts.BlogTitle
	if title == "" {
		if s, ok := doc.Section(rules.Hero); ok && len(s.Lines) > 0 {
			title = strings.Join(s.Lines, " ")
		} else {
			title = DefaultHeadline
		}
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>" + Escape(title) + "</title>\n")
	if g.css != "" {
		b.WriteString("<style>\n" + sanitizeCSS(g.css) + "\n</style>\n")
	}
	b.WriteString("</head>\n<body>\n<article class=\"" + ContainerClass + "\">\n")
	b.WriteString(g.HTML(doc, opts))
	b.WriteString("\n</article>\n</body>\n</html>\n")
	return b.String()
}

// sanitizeCSS escapes sequences that could close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var defaultGenerator = New()

// GenerateHTML renders doc as a fragment with the default generator.
func GenerateHTML(doc *parser.Document, opts Options) string {
	return defaultGenerator.HTML(doc, opts)
}

// GenerateStyledHTML renders doc as a styled fragment with no embedded stylesheet.
func GenerateStyledHTML(doc *parser.Document, opts Options) string {
	return defaultGenerator.StyledHTML(doc, opts)
}

// GenerateHTMLDocument renders doc as a standalone document with no embedded stylesheet.
func GenerateHTMLDocument(doc *parser.Document, opts Options) string {
	return defaultGenerator.Document(doc, opts)
}
