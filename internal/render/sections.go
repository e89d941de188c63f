package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-seopost/internal/parser"
	"github.com/alnah/go-seopost/internal/rules"
)

// Placeholder paragraphs for sections that cannot be shaped.
const (
	NoComparisonData = "No comparison data provided"
	NoFAQs           = "No FAQs provided"
)

// Fixed list headings.
const (
	headingTOC       = "Table of Contents"
	headingBenefits  = "Key Benefits"
	headingResources = "Related Resources"
	headingSteps     = "Steps"
	headingFAQ       = "Frequently Asked Questions"
)

// maxSubheadingRunes bounds body lines promoted to <h2>.
const maxSubheadingRunes = 60

const (
	imageStyle    = "max-width:100%;height:auto;display:block;margin:1.5em auto;"
	featuredStyle = "width:100%;aspect-ratio:16/9;object-fit:cover;display:block;margin:0 0 2em 0;"
	faqItemStyle  = "margin-bottom:1.5em;"
	faqQStyle     = "margin:0 0 0.5em 0;"
)

var (
	blankLine    = regexp.MustCompile(`\n[ \t]*\n`)
	listMarker   = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)
	separatorRow = regexp.MustCompile(`^\|?\s*:?-{2,}:?\s*(?:\|\s*:?-{2,}:?\s*)*\|?$`)
)

// sectionRenderer shapes one parsed section into an HTML fragment.
// An empty result means the section contributes nothing.
type sectionRenderer func(c *renderContext, s *parser.Section) string

// renderers is keyed by section id. Rule metadata is informational only;
// each section has bespoke formatting that the table cannot express.
var renderers = map[string]sectionRenderer{
	rules.Hero:            renderHero,
	rules.Introduction:    renderParagraph,
	rules.TableOfContents: listRenderer("ul", headingTOC),
	rules.KeyBenefits:     listRenderer("ul", headingBenefits),
	rules.MainContent:     renderBody,
	rules.Highlight:       renderBlockquote,
	rules.Comparison:      renderComparison,
	rules.ExpertTip:       renderBlockquote,
	rules.Steps:           listRenderer("ol", headingSteps),
	rules.Resources:       listRenderer("ul", headingResources),
	rules.FAQ:             renderFAQ,
	rules.Conclusion:      renderParagraph,
}

// renderContext carries per-call options into section renderers.
type renderContext struct {
	opts   Options
	images bool
}

// imageURL resolves keyword to a usable URL.
func (c *renderContext) imageURL(keyword string) (string, bool) {
	u, ok := c.opts.ImageURLs[keyword]
	if !ok || !IsValidURL(u) {
		return "", false
	}
	return strings.TrimSpace(u), true
}

// firstImage returns the tag for the first resolvable image of s.
func (c *renderContext) firstImage(s *parser.Section) string {
	for _, ref := range s.Images {
		if u, ok := c.imageURL(ref.Keyword); ok {
			return imageTag(u, ref.Keyword, imageStyle)
		}
	}
	return ""
}

func imageTag(src, alt, style string) string {
	return fmt.Sprintf(`<img src="%s" alt="%s" style="%s" />`, Escape(src), Escape(alt), style)
}

func renderHero(c *renderContext, s *parser.Section) string {
	if len(s.Lines) == 0 {
		return ""
	}
	out := "<h1>" + Escape(strings.Join(s.Lines, " ")) + "</h1>"

	if !c.images {
		return out
	}
	img := c.firstImage(s)
	if img == "" {
		return out
	}
	switch s.Rule.ImagePosition() {
	case rules.ImageAfter:
		return out + "\n" + img
	case rules.ImageBefore:
		return img + "\n" + out
	}
	return out
}

func renderParagraph(_ *renderContext, s *parser.Section) string {
	if len(s.Lines) == 0 {
		return ""
	}
	return "<p>" + TextWithLinksToHTML(strings.Join(s.Lines, " ")) + "</p>"
}

func renderBlockquote(_ *renderContext, s *parser.Section) string {
	if len(s.Lines) == 0 {
		return ""
	}
	return "<blockquote>\n  <p>" + TextWithLinksToHTML(strings.Join(s.Lines, " ")) + "</p>\n</blockquote>"
}

func listRenderer(tag, heading string) sectionRenderer {
	return func(_ *renderContext, s *parser.Section) string {
		var items []string
		for _, line := range s.Lines {
			if item := strings.TrimSpace(listMarker.ReplaceAllString(line, "")); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			return ""
		}

		var b strings.Builder
		b.WriteString("<h2>" + heading + "</h2>\n<" + tag + ">\n")
		for _, item := range items {
			b.WriteString("  <li>" + TextWithLinksToHTML(item) + "</li>\n")
		}
		b.WriteString("</" + tag + ">")
		return b.String()
	}
}

// renderBody splits the main content on blank lines. A short first line
// ending in ":" or written in capitals becomes an <h2>. Odd-indexed
// paragraphs take the next section image in sequence; each image is used at
// most once and unresolvable ones are skipped.
func renderBody(c *renderContext, s *parser.Section) string {
	var parts []string
	next := 0
	idx := 0

	for _, block := range blankLine.Split(s.RawContent, -1) {
		lines := nonEmptyLines(block)
		if len(lines) == 0 {
			continue
		}

		if heading, ok := subheading(lines[0]); ok {
			parts = append(parts, "<h2>"+TextWithLinksToHTML(heading)+"</h2>")
			lines = lines[1:]
		}
		if len(lines) > 0 {
			parts = append(parts, "<p>"+TextWithLinksToHTML(strings.Join(lines, " "))+"</p>")
		}

		if c.images && idx%2 == 1 && next < len(s.Images) {
			ref := s.Images[next]
			next++
			if u, ok := c.imageURL(ref.Keyword); ok {
				parts = append(parts, imageTag(u, ref.Keyword, imageStyle))
			}
		}
		idx++
	}
	return strings.Join(parts, "\n")
}

// subheading reports whether line qualifies as a body subheading and
// returns its text without the trailing colon.
func subheading(line string) (string, bool) {
	if utf8.RuneCountInString(line) >= maxSubheadingRunes {
		return "", false
	}
	if !strings.HasSuffix(line, ":") && !isUpper(line) {
		return "", false
	}
	text := strings.TrimSpace(strings.TrimSuffix(line, ":"))
	if text == "" {
		return "", false
	}
	return text, true
}

// isUpper reports whether s has letters and none of them are lowercase.
func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func renderComparison(_ *renderContext, s *parser.Section) string {
	var rows [][]string
	for _, line := range s.Lines {
		if separatorRow.MatchString(line) {
			continue
		}
		rows = append(rows, tableCells(line))
	}
	if len(rows) < 2 {
		return "<p>" + NoComparisonData + "</p>"
	}

	var b strings.Builder
	b.WriteString("<table>\n  <thead>\n    <tr>")
	for _, cell := range rows[0] {
		b.WriteString("<th>" + Escape(cell) + "</th>")
	}
	b.WriteString("</tr>\n  </thead>\n  <tbody>\n")
	for _, row := range rows[1:] {
		b.WriteString("    <tr>")
		for _, cell := range row {
			b.WriteString("<td>" + Escape(cell) + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("  </tbody>\n</table>")
	return b.String()
}

// tableCells splits a pipe-delimited row, dropping the empty cells produced
// by leading and trailing pipes.
func tableCells(line string) []string {
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	if len(cells) > 1 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 1 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func renderFAQ(_ *renderContext, s *parser.Section) string {
	faqs := ExtractFAQs(s.Lines)
	if len(faqs) == 0 {
		return "<p>" + NoFAQs + "</p>"
	}

	parts := []string{"<h2>" + headingFAQ + "</h2>"}
	for _, f := range faqs {
		parts = append(parts, fmt.Sprintf(
			"<div class=\"faq-item\" style=\"%s\">\n  <h3 style=\"%s\">%s</h3>\n  <p>%s</p>\n</div>",
			faqItemStyle, faqQStyle, Escape(f.Question), Escape(f.Answer),
		))
	}
	return strings.Join(parts, "\n")
}

func nonEmptyLines(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
