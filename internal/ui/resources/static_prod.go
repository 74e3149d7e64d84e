//go:build !dev

package resources

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Handler serves the assets compiled into the binary.
func Handler() http.Handler {
	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return fileHandler(fsys, "public, max-age=31536000, immutable")
}

// IsDev reports whether assets are read from disk.
func IsDev() bool {
	return false
}
