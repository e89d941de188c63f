package assets

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range []string{"default", "minimal", "magazine"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			css, err := loader.LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", name, err)
			}
			if !strings.Contains(css, ".seo-blog-post") {
				t.Errorf("style %q should scope rules under .seo-blog-post", name)
			}
			if strings.Contains(css, "</") {
				t.Errorf("style %q must not contain a closing tag sequence", name)
			}
		})
	}

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("nonexistent")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("../default")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_Styles(t *testing.T) {
	t.Parallel()

	got, err := NewEmbeddedLoader().Styles()
	if err != nil {
		t.Fatalf("Styles() error = %v", err)
	}
	want := []string{"default", "magazine", "minimal"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Styles() = %v, want %v", got, want)
	}
}
