// Package compose turns a guided form into marker text.
//
// The form is the structured alternative to writing {sectionN} markers by
// hand. Compose emits marker text so both paths share the parser's
// validation.
package compose

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/alnah/go-seopost/internal/render"
	"github.com/alnah/go-seopost/internal/rules"
	"github.com/alnah/go-seopost/internal/yamlutil"
)

// Sentinel errors for form composition.
var (
	ErrEmptyForm      = errors.New("form has no section content")
	ErrUnknownSection = errors.New("unknown section")
	ErrInvalidKeyword = errors.New("invalid image keyword")
	ErrMarkerInText   = errors.New("section text contains a marker")
)

// embeddedMarker matches markers the parser would split on.
var embeddedMarker = regexp.MustCompile(`(?i)\{(?:section\d+|img)\}`)

// Section is the form input for one section.
type Section struct {
	Text   string   `yaml:"text" json:"text"`
	Images []string `yaml:"images,omitempty" json:"images,omitempty"`
}

// Form is a guided post definition.
type Form struct {
	Title         string             `yaml:"title" json:"title"`
	Author        string             `yaml:"author" json:"author"`
	Date          string             `yaml:"date" json:"date"`
	FeaturedImage string             `yaml:"featuredImage" json:"featuredImage"`
	Images        map[string]string  `yaml:"images" json:"images"`
	Sections      map[string]Section `yaml:"sections" json:"sections"`
}

// Decode parses a YAML form, rejecting unknown keys.
func Decode(data []byte) (*Form, error) {
	var f Form
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads a YAML form file.
func Load(path string) (*Form, error) {
	var f Form
	if err := yamlutil.ReadFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Compose renders f as marker text in rule order. Sections with neither
// text nor images are omitted. When section1 is absent the form title
// becomes the hero text.
func Compose(f *Form) (string, error) {
	if f == nil {
		return "", ErrEmptyForm
	}
	if err := f.checkSections(); err != nil {
		return "", err
	}

	var blocks []string
	for _, rule := range rules.All() {
		s, ok := f.Sections[rule.ID]
		if !ok && rule.ID == rules.Hero && strings.TrimSpace(f.Title) != "" {
			s, ok = Section{Text: f.Title}, true
		}
		if !ok {
			continue
		}
		if block := composeSection(rule, s); block != "" {
			blocks = append(blocks, block)
		}
	}

	if len(blocks) == 0 {
		return "", ErrEmptyForm
	}
	return strings.Join(blocks, "\n"), nil
}

// checkSections walks section ids in natural order and lists every
// offending id, so the error is stable across runs.
func (f *Form) checkSections() error {
	ids := make([]string, 0, len(f.Sections))
	for id := range f.Sections {
		ids = append(ids, id)
	}
	sort.Sort(natural.StringSlice(ids))

	var unknown, marked []string
	var badKeyword error
	for _, id := range ids {
		s := f.Sections[id]
		if _, ok := rules.Lookup(id); !ok {
			unknown = append(unknown, id)
			continue
		}
		if embeddedMarker.MatchString(s.Text) {
			marked = append(marked, id)
		}
		for _, kw := range s.Images {
			if badKeyword == nil && (strings.TrimSpace(kw) == "" || strings.ContainsAny(kw, "{}\n")) {
				badKeyword = fmt.Errorf("%w %q in %s", ErrInvalidKeyword, kw, id)
			}
		}
	}
	if embeddedMarker.MatchString(f.Title) {
		marked = append(marked, "title")
	}

	switch {
	case len(marked) > 0:
		return fmt.Errorf("%w: %s", ErrMarkerInText, strings.Join(marked, ", "))
	case badKeyword != nil:
		return badKeyword
	case len(unknown) > 0:
		return fmt.Errorf("%w: %s", ErrUnknownSection, strings.Join(unknown, ", "))
	}
	return nil
}

func composeSection(rule *rules.SectionRule, s Section) string {
	text := strings.TrimSpace(normalizeNewlines(s.Text))
	if text == "" && len(s.Images) == 0 {
		return ""
	}

	imgLines := make([]string, len(s.Images))
	for i, kw := range s.Images {
		imgLines[i] = "{img} " + strings.TrimSpace(kw)
	}

	var b strings.Builder
	b.WriteString("{" + rule.ID + "}\n")
	if rule.ImagePosition() == rules.ImageBefore {
		writeLines(&b, imgLines)
	}
	if text != "" {
		b.WriteString(text + "\n")
	}
	if rule.ImagePosition() != rules.ImageBefore {
		writeLines(&b, imgLines)
	}
	return b.String()
}

func writeLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
}

func normalizeNewlines(s string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
}

// Options returns generation options carrying the form's metadata.
func (f *Form) Options() render.Options {
	return render.Options{
		BlogTitle:        f.Title,
		BlogDate:         f.Date,
		AuthorName:       f.Author,
		ImageURLs:        f.Images,
		FeaturedImageURL: f.FeaturedImage,
	}
}
