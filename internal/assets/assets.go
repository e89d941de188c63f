package assets

// DefaultStyleName is the built-in style used when none is configured.
const DefaultStyleName = "default"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// Styles lists the built-in style names.
func Styles() ([]string, error) {
	return defaultLoader.Styles()
}
