// Package web serves the embedded admin UI.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// Handler serves the single-page admin UI and its assets.
func Handler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("embedded static directory missing: " + err.Error())
	}
	return http.FileServer(http.FS(sub))
}
