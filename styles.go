package formkit

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.css
var embeddedStyles embed.FS

// StylesFS exposes the stylesheet backing the classes formkit toggles
// (fade-in, error, form-error) so hosts can serve it next to their pages.
//
// Typical mount:
//
//	mux.Handle("/formkit/",
//	  http.StripPrefix("/formkit/",
//	    http.FileServerFS(formkit.StylesFS()),
//	  ),
//	)
func StylesFS() fs.FS {
	sub, err := fs.Sub(embeddedStyles, "assets")
	if err != nil {
		return embeddedStyles
	}
	return sub
}
