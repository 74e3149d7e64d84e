package ui

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/autohub/internal/testutil"
	"github.com/leapstack-labs/autohub/internal/ui/features"
	"github.com/leapstack-labs/autohub/internal/ui/resources"
)

func newTestServer(t *testing.T, watch bool) *Server {
	t.Helper()
	fixture := features.SetupTestFixture(t)
	return NewServer(Config{
		Listings:      fixture.Listings,
		Store:         fixture.Store,
		Site:          fixture.Site,
		Watch:         watch,
		SessionSecret: features.TestSessionSecret,
		Logger:        testutil.NewTestLogger(t),
	})
}

func TestServer_Handler(t *testing.T) {
	s := newTestServer(t, false)

	handler, err := s.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/vehicle/8712345", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>2022 Toyota Corolla Cross 1.8 XS - AutoHub</title>")
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"), "viewing a vehicle stores it in the session")
}

func TestServer_Handler_Compresses(t *testing.T) {
	s := newTestServer(t, false)

	handler, err := s.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestNewServer_DevMode(t *testing.T) {
	assert.Equal(t, resources.IsDev(), newTestServer(t, false).IsDev())
	assert.True(t, newTestServer(t, true).IsDev())
}

func TestNewServer_GeneratesSecret(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	logger, logs := testutil.NewCaptureLogger()
	s := NewServer(Config{Listings: fixture.Listings, Store: fixture.Store, Site: fixture.Site, Logger: logger})
	assert.Contains(t, logs.String(), "ui.session_secret is not set")

	handler, err := s.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicle/8712345", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
}

func TestServer_ServeShutsDown(t *testing.T) {
	s := newTestServer(t, false)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/contact")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "082 709 3821")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_URL(t *testing.T) {
	s := newTestServer(t, false)
	assert.Equal(t, "http://localhost:9000", s.URL(&net.TCPAddr{Port: 9000}))
}

func TestServer_AssetAction(t *testing.T) {
	s := newTestServer(t, true)
	src := resources.SourceDir()

	assert.Nil(t, s.assetAction(filepath.Join(src, "notes.md"), src))
	assert.NotNil(t, s.assetAction(filepath.Join(src, "autohub.ts"), src))

	updates := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(updates)

	action := s.assetAction(filepath.Join(resources.StaticDir(), "css", "autohub.css"), src)
	require.NotNil(t, action)
	action()

	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("static change did not broadcast")
	}
}
