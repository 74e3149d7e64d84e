// Package resources provides static asset handling for the UI server.
package resources

import (
	"io/fs"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Dir returns the absolute path of this package's directory, where src/ and
// static/ live. It is only meaningful in a source checkout.
func Dir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Dir(StaticDirectoryPath)
	}
	return filepath.Dir(filename)
}

// StaticDir returns the directory static assets are served from in dev mode
// and written to by Build.
func StaticDir() string {
	return filepath.Join(Dir(), "static")
}

// SourceDir returns the directory holding the unbundled stylesheet and script.
func SourceDir() string {
	return filepath.Join(Dir(), "src")
}

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}

// fileHandler serves fsys under /static/ with the given Cache-Control.
// Directory paths answer 404 rather than a listing.
func fileHandler(fsys fs.FS, cacheControl string) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cacheControl)
		files.ServeHTTP(w, r)
	})
}
