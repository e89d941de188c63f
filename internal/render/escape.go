package render

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// markdownLink matches [text](url) in already-escaped text.
var markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)

// blockedSchemes are rejected even though they lack "://".
var blockedSchemes = []string{"javascript:", "data:", "vbscript:"}

// Escape replaces the five HTML metacharacters with entities.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// TextWithLinksToHTML escapes text and converts markdown links whose URL
// passes IsValidURL into anchors. Links with rejected URLs stay as literal,
// escaped text.
func TextWithLinksToHTML(text string) string {
	escaped := Escape(text)
	return markdownLink.ReplaceAllStringFunc(escaped, func(match string) string {
		sub := markdownLink.FindStringSubmatch(match)
		label, href := sub[1], sub[2]
		if !IsValidURL(html.UnescapeString(href)) {
			return match
		}
		return `<a href="` + href + `">` + label + `</a>`
	})
}

// IsValidURL reports whether raw is safe to use as a link or image target.
// http, https and mailto URLs are accepted, as are root-, hash- and
// query-relative paths and anything without "://". javascript:, data: and
// vbscript: are always rejected.
func IsValidURL(raw string) bool {
	u := strings.TrimSpace(raw)
	if u == "" {
		return false
	}

	// Browsers ignore embedded whitespace and control characters in schemes.
	normalized := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, u))

	for _, scheme := range blockedSchemes {
		if strings.HasPrefix(normalized, scheme) {
			return false
		}
	}

	switch {
	case strings.HasPrefix(normalized, "http://"),
		strings.HasPrefix(normalized, "https://"),
		strings.HasPrefix(normalized, "mailto:"),
		strings.HasPrefix(normalized, "/"),
		strings.HasPrefix(normalized, "#"),
		strings.HasPrefix(normalized, "?"):
		return true
	}

	return !strings.Contains(normalized, "://")
}
