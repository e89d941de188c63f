// Package dateutil resolves publication dates for blog posts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// ISOLayout is the day-precision layout used in JSON-LD datePublished.
const ISOLayout = "2006-01-02"

// formatTokens maps format tokens to Go layout fragments.
// Longer tokens come first so "YYYY" wins over "YY".
var formatTokens = []struct {
	token  string
	layout string
}{
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named shortcuts accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"full":     "dddd, MMMM D, YYYY",
}

// timestampLayouts are truncated to ISOLayout by Resolve.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ToLayout converts a token format such as "DD/MM/YYYY" to a Go layout.
// Text inside brackets is copied literally: "[Posted] D MMM" keeps "Posted".
func ToLayout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		if tok, layout, ok := matchToken(rest); ok {
			b.WriteString(layout)
			rest = rest[len(tok):]
			continue
		}
		b.WriteByte(rest[0])
		rest = rest[1:]
	}
	return b.String(), nil
}

func matchToken(s string) (token, layout string, ok bool) {
	for _, t := range formatTokens {
		if strings.HasPrefix(s, t.token) {
			return t.token, t.layout, true
		}
	}
	return "", "", false
}

// Resolve turns a configured blog date into the string placed in the post.
//   - "" stays empty, so the generator falls back to the current day
//   - "auto" is now in ISO day precision
//   - "auto:FORMAT" and "auto:preset" format now with ToLayout
//   - timestamps are truncated to the day
//   - anything else is returned unchanged
func Resolve(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	lower := strings.ToLower(value)
	switch {
	case lower == "auto":
		return now.Format(ISOLayout), nil
	case strings.HasPrefix(lower, "auto:"):
		format := value[len("auto:"):]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
		layout, err := ToLayout(format)
		if err != nil {
			return "", err
		}
		return now.Format(layout), nil
	case strings.HasPrefix(lower, "auto"):
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(ISOLayout), nil
		}
	}
	return value, nil
}
