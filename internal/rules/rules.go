// Package rules defines the fixed table of twelve blog post sections.
//
// The table is static data: wrapper tags, word and item limits, image policy
// and structured-data treatment for each section id. It is read-only after
// package initialization and safe for concurrent use.
package rules

import (
	"sort"

	"github.com/maruel/natural"
)

// Section ids.
const (
	Hero            = "section1"
	Introduction    = "section2"
	TableOfContents = "section3"
	KeyBenefits     = "section4"
	MainContent     = "section5"
	Highlight       = "section6"
	Comparison      = "section7"
	ExpertTip       = "section8"
	Steps           = "section9"
	Resources       = "section10"
	FAQ             = "section11"
	Conclusion      = "section12"
)

// ImagePosition places a section image relative to its content.
type ImagePosition string

// Image positions.
const (
	ImageBefore ImagePosition = "before"
	ImageAfter  ImagePosition = "after"
	ImageNone   ImagePosition = "none"
)

// SchemaType tags the structured-data treatment of a section.
type SchemaType string

// Schema types.
const (
	SchemaArticle SchemaType = "article"
	SchemaFAQ     SchemaType = "faq"
	SchemaNone    SchemaType = "none"
)

// ImagePolicy describes whether and where a section carries an image.
type ImagePolicy struct {
	Position ImagePosition `json:"position" yaml:"position"`
	Required bool          `json:"required" yaml:"required"`
}

// ItemLimits bounds the number of non-empty lines in list sections.
// Zero means unbounded.
type ItemLimits struct {
	MinItems int `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems int `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

// SectionRule is the immutable definition of one section.
// MinWords and MaxWords of zero mean no bound.
type SectionRule struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Wrapper  string       `json:"wrapper" yaml:"wrapper"`
	Order    int          `json:"order" yaml:"order"`
	Required bool         `json:"required" yaml:"required"`
	MinWords int          `json:"minWords,omitempty" yaml:"minWords,omitempty"`
	MaxWords int          `json:"maxWords,omitempty" yaml:"maxWords,omitempty"`
	Image    *ImagePolicy `json:"image,omitempty" yaml:"image,omitempty"`
	Items    *ItemLimits  `json:"validationRules,omitempty" yaml:"validationRules,omitempty"`
	Schema   SchemaType   `json:"schema" yaml:"schema"`
}

// ImagePosition returns the rule's image position, ImageNone when unset.
func (r *SectionRule) ImagePosition() ImagePosition {
	if r == nil || r.Image == nil {
		return ImageNone
	}
	return r.Image.Position
}

var table = map[string]*SectionRule{
	Hero: {
		ID: Hero, Name: "Hero Title", Wrapper: "h1", Order: 1, Required: true,
		MinWords: 3, MaxWords: 15,
		Image:  &ImagePolicy{Position: ImageAfter},
		Schema: SchemaArticle,
	},
	Introduction: {
		ID: Introduction, Name: "Introduction", Wrapper: "p", Order: 2, Required: true,
		MinWords: 40, MaxWords: 200,
		Schema: SchemaArticle,
	},
	TableOfContents: {
		ID: TableOfContents, Name: "Table of Contents", Wrapper: "ul", Order: 3,
		Items:  &ItemLimits{MinItems: 3, MaxItems: 12},
		Schema: SchemaNone,
	},
	KeyBenefits: {
		ID: KeyBenefits, Name: "Key Benefits", Wrapper: "ul", Order: 4,
		Items:  &ItemLimits{MinItems: 3, MaxItems: 8},
		Schema: SchemaArticle,
	},
	MainContent: {
		ID: MainContent, Name: "Main Content", Wrapper: "article", Order: 5, Required: true,
		MinWords: 120, MaxWords: 3000,
		Image:  &ImagePolicy{Position: ImageAfter},
		Schema: SchemaArticle,
	},
	Highlight: {
		ID: Highlight, Name: "Highlight Quote", Wrapper: "blockquote", Order: 6,
		MaxWords: 60,
		Schema:   SchemaNone,
	},
	Comparison: {
		ID: Comparison, Name: "Comparison Table", Wrapper: "table", Order: 7,
		Items:  &ItemLimits{MinItems: 2},
		Schema: SchemaNone,
	},
	ExpertTip: {
		ID: ExpertTip, Name: "Expert Tip", Wrapper: "blockquote", Order: 8,
		MaxWords: 80,
		Schema:   SchemaNone,
	},
	Steps: {
		ID: Steps, Name: "Step-by-Step Guide", Wrapper: "ol", Order: 9,
		Items:  &ItemLimits{MinItems: 2, MaxItems: 15},
		Schema: SchemaArticle,
	},
	Resources: {
		ID: Resources, Name: "Related Resources", Wrapper: "ul", Order: 10,
		Items:  &ItemLimits{MaxItems: 10},
		Schema: SchemaNone,
	},
	FAQ: {
		ID: FAQ, Name: "FAQ", Wrapper: "div", Order: 11,
		Schema: SchemaFAQ,
	},
	Conclusion: {
		ID: Conclusion, Name: "Conclusion", Wrapper: "p", Order: 12, Required: true,
		MinWords: 30, MaxWords: 200,
		Schema: SchemaArticle,
	},
}

// Lookup returns the rule for id, or false if id is not a known section.
// The returned rule is shared and must not be modified.
func Lookup(id string) (*SectionRule, bool) {
	r, ok := table[id]
	return r, ok
}

// All returns every rule sorted by Order.
func All() []*SectionRule {
	out := make([]*SectionRule, 0, len(table))
	for _, r := range table {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return natural.Less(out[i].ID, out[j].ID)
	})
	return out
}

// Required returns the ids of required sections in table order.
func Required() []string {
	var ids []string
	for _, r := range All() {
		if r.Required {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
