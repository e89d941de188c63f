package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "default"},
		{name: "hyphenated", input: "brand-dark"},
		{name: "underscore", input: "brand_dark"},
		{name: "empty", input: "", wantErr: true},
		{name: "forward slash", input: "styles/default", wantErr: true},
		{name: "backslash", input: `styles\default`, wantErr: true},
		{name: "parent traversal", input: "..", wantErr: true},
		{name: "extension", input: "default.css", wantErr: true},
		{name: "null byte", input: "default\x00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAssetName) {
					t.Errorf("ValidateAssetName(%q) = %v, want ErrInvalidAssetName", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}
