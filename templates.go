package viewkit

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedFragments embed.FS

// DefaultFragmentsFS exposes the built-in fragment bundle so callers can use
// or extend the stock markup without shipping their own templates.
func DefaultFragmentsFS() fs.FS {
	sub, err := fs.Sub(embeddedFragments, "templates")
	if err != nil {
		return embeddedFragments
	}
	return sub
}

// DefaultFragmentNames lists the fragments bundled with the module.
func DefaultFragmentNames() []string {
	return []string{"list_item", "detail"}
}
