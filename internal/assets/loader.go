package assets

// StyleLoader loads CSS styles by name (without the .css extension).
type StyleLoader interface {
	// LoadStyle returns ErrStyleNotFound if the style doesn't exist and
	// ErrInvalidAssetName if the name is unsafe.
	LoadStyle(name string) (string, error)

	// Styles lists the available style names in natural order.
	Styles() ([]string, error)
}
