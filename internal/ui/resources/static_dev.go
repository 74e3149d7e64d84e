//go:build dev

package resources

import (
	"log/slog"
	"net/http"
	"os"
)

// Handler serves assets straight from StaticDir so rebuilt files show up on
// the next request.
func Handler() http.Handler {
	staticDir := StaticDir()
	slog.Info("static assets served from filesystem", "path", staticDir)
	return fileHandler(os.DirFS(staticDir), "no-cache")
}

// IsDev reports whether assets are read from disk.
func IsDev() bool {
	return true
}
