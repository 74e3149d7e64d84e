package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/autohub/internal/testutil"
	"github.com/leapstack-labs/autohub/internal/ui/features"
)

func setupRouter(t *testing.T, isDev bool) (*httptest.Server, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	site := fixture.Site
	site.IsDev = isDev

	r := chi.NewMux()
	require.NoError(t, SetupRoutes(r, fixture.Listings, fixture.Store, fixture.SessionStore, fixture.Notifier, site, testutil.NewTestLogger(t)))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, fixture
}

func TestSetupRoutes(t *testing.T) {
	srv, _ := setupRouter(t, false)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, "Find your next car"},
		{"/vehicles", http.StatusOK, "All vehicles"},
		{"/vehicles?page=2", http.StatusOK, "Page 2"},
		{"/brand/toyota", http.StatusOK, "Toyota for sale"},
		{"/brand/toyota/corolla-cross", http.StatusOK, "Toyota Corolla Cross for sale"},
		{"/vehicle/8712345", http.StatusOK, "2022 Toyota Corolla Cross 1.8 XS"},
		{"/vehicle/404404", http.StatusNotFound, "Error Loading Vehicle"},
		{"/about", http.StatusOK, "About AutoHub"},
		{"/contact", http.StatusOK, "Contact us"},
		{"/static/css/autohub.css", http.StatusOK, ".vehicle-grid"},
		{"/no/such/page", http.StatusNotFound, "Page Not Found"},
		{"/reload", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, string(body), tt.wantBody)
		})
	}
}

func TestSetupRoutes_PostRoutes(t *testing.T) {
	srv, _ := setupRouter(t, false)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/vehicle/8712345/phone", strings.NewReader("{}"))
	require.NoError(t, err)
	req.Header.Set("Datastar-Request", "true")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "082 709 3821")
}

func TestReload(t *testing.T) {
	srv, fixture := setupRouter(t, true)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/reload", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// The first stream after start reloads at once.
	buf := make([]byte, 4096)
	n, err := resp.Body.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "window.location.reload()")

	require.Eventually(t, func() bool { return fixture.Notifier.Listeners() == 1 }, time.Second, 10*time.Millisecond)

	hot, err := http.Get(srv.URL + "/hotreload")
	require.NoError(t, err)
	_ = hot.Body.Close()
	assert.Equal(t, http.StatusOK, hot.StatusCode)

	n, err = resp.Body.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "window.location.reload()")

	cancel()
	require.Eventually(t, func() bool { return fixture.Notifier.Listeners() == 0 }, time.Second, 10*time.Millisecond)
}
