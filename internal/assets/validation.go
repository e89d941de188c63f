package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a style name is safe for use as a filename.
// Dots are rejected along with separators so "../x" and "x.css" both fail.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
