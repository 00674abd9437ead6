package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed public
var publicFS embed.FS

// Static asset paths inside Public.
const (
	AboutPage = "about.html"
	Image     = "hapi.png"
)

// Public returns the static assets rooted at the public directory.
func Public() fs.FS {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		// the directory is embedded above; Sub only fails on an invalid name
		panic(err)
	}
	return sub
}
