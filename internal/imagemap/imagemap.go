// Package imagemap loads keyword to URL maps for {img} placeholders.
//
// Uploading images is out of scope; whatever uploads them writes a flat
// YAML file:
//
//	hero: https://cdn.example.com/hero.jpg
//	latte-art: https://cdn.example.com/latte.png
package imagemap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"github.com/alnah/go-seopost/internal/render"
	"github.com/alnah/go-seopost/internal/yamlutil"
)

// Sentinel errors for image map loading.
var (
	ErrEmptyKeyword = errors.New("empty image keyword")
	ErrUnsafeURL    = errors.New("unsafe image URL")
)

// Map is a keyword to URL mapping.
type Map map[string]string

// Parse decodes and checks a YAML image map.
func Parse(data []byte) (Map, error) {
	var m Map
	if err := yamlutil.UnmarshalStrict(data, &m); err != nil {
		return nil, err
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads each file in order; later files override earlier keywords.
func Load(paths ...string) (Map, error) {
	out := Map{}
	for _, p := range paths {
		var m Map
		if err := yamlutil.ReadFile(p, &m); err != nil {
			if errors.Is(err, yamlutil.ErrEmptyInput) {
				continue
			}
			return nil, fmt.Errorf("image map %s: %w", p, err)
		}
		if err := m.Check(); err != nil {
			return nil, fmt.Errorf("image map %s: %w", p, err)
		}
		for k, v := range m {
			out[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return out, nil
}

// Check reports every empty keyword and unsafe URL in natural keyword order.
func (m Map) Check() error {
	var err error
	for _, k := range m.Keywords() {
		if strings.TrimSpace(k) == "" {
			err = multierr.Append(err, ErrEmptyKeyword)
			continue
		}
		if !render.IsValidURL(m[k]) {
			err = multierr.Append(err, fmt.Errorf("%w: %s: %q", ErrUnsafeURL, k, m[k]))
		}
	}
	return err
}

// Keywords returns the keywords in natural order.
func (m Map) Keywords() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	return keys
}

// Merge returns a new map with the entries of each map applied in order.
func Merge(maps ...map[string]string) Map {
	out := Map{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// Unresolved returns the keywords with no usable URL in m, preserving the
// order of keywords.
func Unresolved(keywords []string, m map[string]string) []string {
	var missing []string
	for _, kw := range keywords {
		if u, ok := m[kw]; !ok || !render.IsValidURL(u) {
			missing = append(missing, kw)
		}
	}
	return missing
}
