// Package parser turns marker-delimited text into a validated section list.
//
// Input text carries {sectionN} markers (case-insensitive) and {img} keyword
// placeholders. Parse never fails: structural problems and rule violations
// surface as warnings in Document.Metadata, and callers decide what to do
// with an invalid document.
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/alnah/go-seopost/internal/rules"
)

// NoMarkersWarning is the single warning returned for text without markers.
const NoMarkersWarning = "No section markers found. Add markers such as {section1} to structure your content."

var (
	markerPattern = regexp.MustCompile(`(?i)\{section(\d+)\}`)
	imagePattern  = regexp.MustCompile(`(?i)\{img\}([^\n{}]*)`)
	crlfOrCR      = regexp.MustCompile(`\r\n?`)
)

// ImageReference is an {img} placeholder found inside a section.
// Keyword joins against the caller's keyword to URL map.
type ImageReference struct {
	Keyword   string `json:"keyword"`
	SectionID string `json:"sectionId"`
	Position  int    `json:"position"`
}

// Section is one parsed block of the document.
type Section struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	RawContent string             `json:"rawContent"`
	Lines      []string           `json:"lines"`
	WordCount  int                `json:"wordCount"`
	Rule       *rules.SectionRule `json:"rule"`
	Valid      bool               `json:"valid"`
	Warnings   []string           `json:"warnings"`
	Images     []ImageReference   `json:"images"`
}

// Metadata summarizes a parsed document.
// IsValid is true only when no required section is missing and no warning
// of any kind was raised.
type Metadata struct {
	TotalWords      int      `json:"totalWords"`
	TotalSections   int      `json:"totalSections"`
	IsValid         bool     `json:"isValid"`
	MissingRequired []string `json:"missingRequired"`
	Warnings        []string `json:"warnings"`
}

// Document is the parser output. Sections follow document appearance order.
type Document struct {
	Sections []Section        `json:"sections"`
	Images   []ImageReference `json:"images"`
	Metadata Metadata         `json:"metadata"`
}

// Section returns the first section with the given id.
func (d *Document) Section(id string) (*Section, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i], true
		}
	}
	return nil, false
}

// ImageKeywords returns the distinct image keywords, naturally sorted.
func (d *Document) ImageKeywords() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool, len(d.Images))
	var out []string
	for _, img := range d.Images {
		if seen[img.Keyword] {
			continue
		}
		seen[img.Keyword] = true
		out = append(out, img.Keyword)
	}
	sort.Sort(natural.StringSlice(out))
	return out
}

type marker struct {
	id         string
	start, end int
}

// Parse scans text for section markers and validates each section.
func Parse(text string) *Document {
	text = crlfOrCR.ReplaceAllString(text, "\n")

	doc := &Document{
		Sections: []Section{},
		Images:   []ImageReference{},
		Metadata: Metadata{
			MissingRequired: []string{},
			Warnings:        []string{},
		},
	}

	markers := findMarkers(text)
	if len(markers) == 0 {
		doc.Metadata.Warnings = append(doc.Metadata.Warnings, NoMarkersWarning)
		return doc
	}

	var docWarnings []string
	seen := make(map[string]bool, len(markers))

	for i, m := range markers {
		spanEnd := len(text)
		if i+1 < len(markers) {
			spanEnd = markers[i+1].start
		}
		span := strings.TrimSpace(text[m.end:spanEnd])

		rule, ok := rules.Lookup(m.id)
		if !ok {
			docWarnings = append(docWarnings, "Unknown section: "+m.id)
			continue
		}
		if seen[m.id] {
			docWarnings = append(docWarnings, "Duplicate section: "+m.id)
		}
		seen[m.id] = true

		section := parseSection(m.id, span, rule)
		doc.Sections = append(doc.Sections, section)
		doc.Images = append(doc.Images, section.Images...)
		doc.Metadata.TotalWords += section.WordCount
	}

	for _, id := range rules.Required() {
		if !seen[id] {
			doc.Metadata.MissingRequired = append(doc.Metadata.MissingRequired, id)
		}
	}

	doc.Metadata.Warnings = append(doc.Metadata.Warnings, docWarnings...)
	for _, s := range doc.Sections {
		for _, w := range s.Warnings {
			doc.Metadata.Warnings = append(doc.Metadata.Warnings, s.Name+": "+w)
		}
	}

	doc.Metadata.TotalSections = len(doc.Sections)
	doc.Metadata.IsValid = len(doc.Metadata.MissingRequired) == 0 && len(doc.Metadata.Warnings) == 0
	return doc
}

func findMarkers(text string) []marker {
	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)
	markers := make([]marker, 0, len(matches))
	for _, loc := range matches {
		markers = append(markers, marker{
			id:    "section" + text[loc[2]:loc[3]],
			start: loc[0],
			end:   loc[1],
		})
	}
	return markers
}

func parseSection(id, span string, rule *rules.SectionRule) Section {
	images := extractImages(id, span)
	clean := strings.TrimSpace(imagePattern.ReplaceAllString(span, ""))

	s := Section{
		ID:         id,
		Name:       rule.Name,
		RawContent: clean,
		Lines:      splitLines(clean),
		WordCount:  len(strings.Fields(clean)),
		Rule:       rule,
		Images:     images,
	}
	s.Warnings = Validate(s.RawContent, s.WordCount, len(s.Lines), rule)
	s.Valid = len(s.Warnings) == 0
	return s
}

func extractImages(sectionID, span string) []ImageReference {
	images := []ImageReference{}
	for _, m := range imagePattern.FindAllStringSubmatch(span, -1) {
		keyword := strings.TrimSpace(m[1])
		if keyword == "" {
			continue
		}
		images = append(images, ImageReference{
			Keyword:   keyword,
			SectionID: sectionID,
			Position:  len(images),
		})
	}
	return images
}

func splitLines(content string) []string {
	lines := []string{}
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Validate checks one section's content against its rule.
// It returns an empty slice when the section satisfies the rule.
func Validate(content string, wordCount, itemCount int, rule *rules.SectionRule) []string {
	warnings := []string{}
	if rule == nil {
		return warnings
	}

	if rule.MaxWords > 0 && wordCount > rule.MaxWords {
		warnings = append(warnings, fmt.Sprintf("Too many words: %d/%d maximum", wordCount, rule.MaxWords))
	}
	if rule.MinWords > 0 && wordCount < rule.MinWords {
		warnings = append(warnings, fmt.Sprintf("Too few words: %d/%d minimum", wordCount, rule.MinWords))
	}
	if rule.ID != rules.Hero && strings.Contains(strings.ToLower(content), "<h1") {
		warnings = append(warnings, "Only the hero section may contain an H1 heading")
	}
	if rule.Items != nil {
		if rule.Items.MinItems > 0 && itemCount < rule.Items.MinItems {
			warnings = append(warnings, fmt.Sprintf("Too few items: %d/%d minimum", itemCount, rule.Items.MinItems))
		}
		if rule.Items.MaxItems > 0 && itemCount > rule.Items.MaxItems {
			warnings = append(warnings, fmt.Sprintf("Too many items: %d/%d maximum", itemCount, rule.Items.MaxItems))
		}
	}
	return warnings
}

// ValidateOrder reports sections that appear out of rule order.
// Parse does not call it; integrators opt in after parsing.
func ValidateOrder(doc *Document) []string {
	warnings := []string{}
	if doc == nil {
		return warnings
	}
	for i := 1; i < len(doc.Sections); i++ {
		prev, cur := doc.Sections[i-1], doc.Sections[i]
		if prev.Rule == nil || cur.Rule == nil {
			continue
		}
		if cur.Rule.Order <= prev.Rule.Order {
			warnings = append(warnings, fmt.Sprintf("%s (%s) appears after %s (%s)", cur.Name, cur.ID, prev.Name, prev.ID))
		}
	}
	return warnings
}
