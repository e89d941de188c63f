// Package seopost turns marker-annotated blog post text into SEO-structured
// HTML.
//
// # Quick Start
//
// Parse marker text and generate an HTML fragment:
//
//	doc := seopost.ParseDocument("{section1}\nBrew Better Coffee at Home\n{section2}\n...")
//	html := seopost.GenerateHTML(doc, seopost.Options{
//	    AuthorName: "Sam",
//	    ImageURLs:  map[string]string{"hero": "https://cdn.example.com/hero.jpg"},
//	})
//
// Parsing never fails. Problems are reported as warnings in
// doc.Metadata, and doc.Metadata.IsValid is false when a required section
// is missing or any warning was raised. The caller decides what to do with
// an invalid document.
//
// # Markers
//
// A line of text following {sectionN} (N from 1 to 12) belongs to that
// section until the next marker. {img} keyword lines inside a section are
// image placeholders; keywords are resolved through Options.ImageURLs.
//
//	{section1}
//	Brew Better Coffee at Home
//	{img} hero
//	{section2}
//	Coffee is a ritual...
//
// # Output variants
//
// GenerateHTML returns an embeddable fragment, GenerateStyledHTML wraps it
// in a styled container and GenerateHTMLDocument returns a standalone page.
//
// # Converter
//
// Converter bundles parsing, generation, stylesheet resolution and PDF
// export behind functional options:
//
//	conv, err := seopost.NewConverter(
//	    seopost.WithStyle("magazine"),
//	    seopost.WithTimeout(time.Minute),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	res, err := conv.Convert(ctx, seopost.Input{Text: text, Format: seopost.FormatPDF})
//
// HTML formats are safe for concurrent use. PDF export drives one headless
// Chrome per Converter; use ConverterPool to print several posts in
// parallel.
//
// # Guided form
//
// Compose builds marker text from a structured Form, so both input paths
// share one parser:
//
//	text, err := seopost.Compose(&seopost.Form{Sections: map[string]seopost.FormSection{
//	    "section1": {Text: "Brew Better Coffee at Home", Images: []string{"hero"}},
//	}})
package seopost
