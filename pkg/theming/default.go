package theming

import (
	_ "embed"

	theme "github.com/goliatone/go-theme"
)

//go:embed manifest.yaml
var defaultManifest []byte

// DefaultManifest returns the theme's bundled manifest.
func DefaultManifest() (*theme.Manifest, error) {
	return LoadManifest(defaultManifest)
}
