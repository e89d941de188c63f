package assets

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/maruel/natural"

	"github.com/alnah/go-seopost/internal/fileutil"
)

// MaxStyleSize bounds a stylesheet read from an explicit path (512 KiB).
const MaxStyleSize = 512 << 10

// Resolver combines a custom FilesystemLoader with the embedded styles.
// Custom styles win; embedded ones fill in anything the custom directory
// does not provide.
type Resolver struct {
	custom   StyleLoader // nil if no custom path configured
	embedded StyleLoader
}

// NewResolver creates a Resolver. An empty customBasePath uses embedded
// styles only. Returns ErrInvalidBasePath if customBasePath is set but unusable.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle loads a style by name, custom loader first.
// Only ErrStyleNotFound falls through to the embedded styles.
func (r *Resolver) LoadStyle(name string) (string, error) {
	if r.custom != nil {
		css, err := r.custom.LoadStyle(name)
		if err == nil {
			return css, nil
		}
		if !errors.Is(err, ErrStyleNotFound) {
			return "", err
		}
	}
	return r.embedded.LoadStyle(name)
}

// Styles lists embedded and custom style names without duplicates.
func (r *Resolver) Styles() ([]string, error) {
	names, err := r.embedded.Styles()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.Styles()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range custom {
		if !seen[n] {
			names = append(names, n)
		}
	}
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

// Resolve accepts either a style name or a path to a CSS file.
// An empty value resolves to no stylesheet.
func (r *Resolver) Resolve(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", nil
	}
	if !fileutil.IsFilePath(nameOrPath) {
		return r.LoadStyle(nameOrPath)
	}

	info, err := os.Stat(nameOrPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrStyleNotFound, nameOrPath)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrAssetRead, nameOrPath)
	}
	if info.Size() > MaxStyleSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrAssetRead, nameOrPath, MaxStyleSize)
	}
	content, err := os.ReadFile(nameOrPath) // #nosec G304 -- explicit user path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// HasCustomLoader returns true if a custom directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ StyleLoader = (*Resolver)(nil)
