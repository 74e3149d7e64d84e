//go:build !dev

package resources

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestHandler_ServesEmbeddedAssets(t *testing.T) {
	h := Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/autohub.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")
	assert.Contains(t, rec.Body.String(), ".nav-brand")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/js/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, IsDev())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code, "no directory listings")
}

func TestFileHandler(t *testing.T) {
	fsys := fstest.MapFS{"js/app.js": &fstest.MapFile{Data: []byte("console.log(1)")}}
	h := fileHandler(fsys, "no-cache")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/js/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
