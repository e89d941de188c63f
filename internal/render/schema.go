package render

import (
	"encoding/json"
	"fmt"
)

const schemaContext = "https://schema.org"

// Schema fallbacks when options leave fields empty.
const (
	DefaultHeadline = "Blog Post"
	DefaultAuthor   = "Author"
)

type person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type blogPosting struct {
	Context       string `json:"@context"`
	Type          string `json:"@type"`
	Headline      string `json:"headline"`
	DatePublished string `json:"datePublished"`
	Author        person `json:"author"`
	Image         string `json:"image,omitempty"`
}

type answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer answer `json:"acceptedAnswer"`
}

type faqPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []question `json:"mainEntity"`
}

// blogPostingSchema builds the BlogPosting JSON-LD block.
func blogPostingSchema(headline, date, author, image string) string {
	if headline == "" {
		headline = DefaultHeadline
	}
	if author == "" {
		author = DefaultAuthor
	}
	return jsonLD(blogPosting{
		Context:       schemaContext,
		Type:          "BlogPosting",
		Headline:      headline,
		DatePublished: date,
		Author:        person{Type: "Person", Name: author},
		Image:         image,
	})
}

// faqPageSchema builds the FAQPage JSON-LD block, empty when faqs is empty.
func faqPageSchema(faqs []FAQ) string {
	if len(faqs) == 0 {
		return ""
	}
	page := faqPage{Context: schemaContext, Type: "FAQPage"}
	for _, f := range faqs {
		page.MainEntity = append(page.MainEntity, question{
			Type:           "Question",
			Name:           f.Question,
			AcceptedAnswer: answer{Type: "Answer", Text: f.Answer},
		})
	}
	return jsonLD(page)
}

// jsonLD wraps v in a script tag. encoding/json escapes <, > and & so the
// payload cannot close the script element.
func jsonLD(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Only plain string fields are marshaled.
		panic(fmt.Sprintf("render: marshaling schema: %v", err))
	}
	return "<script type=\"application/ld+json\">\n" + string(data) + "\n</script>"
}
