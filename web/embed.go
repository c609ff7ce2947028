// Package web embeds the review dashboard (dist/) and provides an HTTP
// handler that serves it.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:dist
var distFS embed.FS

// DashboardHandler returns an http.Handler serving the embedded dashboard.
func DashboardHandler() http.Handler {
	subFS, err := fs.Sub(distFS, "dist")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}
	return http.FileServer(http.FS(subFS))
}
