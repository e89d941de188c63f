package seopost

import (
	"github.com/alnah/go-seopost/internal/compose"
	"github.com/alnah/go-seopost/internal/parser"
	"github.com/alnah/go-seopost/internal/render"
	"github.com/alnah/go-seopost/internal/rules"
)

// ParseDocument splits marker text into sections, validates each against
// its rule and collects image placeholders. It never fails.
func ParseDocument(text string) *Document {
	return parser.Parse(text)
}

// GenerateHTML renders doc as an embeddable HTML fragment.
// Panics if doc is nil.
func GenerateHTML(doc *Document, opts Options) string {
	return render.GenerateHTML(doc, opts)
}

// GenerateStyledHTML renders doc inside a styled container div.
// Panics if doc is nil.
func GenerateStyledHTML(doc *Document, opts Options) string {
	return render.GenerateStyledHTML(doc, opts)
}

// GenerateHTMLDocument renders doc as a standalone HTML page.
// Panics if doc is nil.
func GenerateHTMLDocument(doc *Document, opts Options) string {
	return render.GenerateHTMLDocument(doc, opts)
}

// ValidateSectionOrder reports sections that appear out of rule order.
// ParseDocument does not call it.
func ValidateSectionOrder(doc *Document) []string {
	return parser.ValidateOrder(doc)
}

// Compose serializes a guided form to marker text.
func Compose(f *Form) (string, error) {
	return compose.Compose(f)
}

// Rules returns the section rules in order.
func Rules() []*SectionRule {
	return rules.All()
}

// LookupRule returns the rule for a section id such as "section5".
func LookupRule(id string) (*SectionRule, bool) {
	return rules.Lookup(id)
}

// RequiredSections returns the ids of required sections in order.
func RequiredSections() []string {
	return rules.Required()
}
