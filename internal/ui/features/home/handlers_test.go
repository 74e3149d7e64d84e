package home

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/autohub/internal/testutil"
	"github.com/leapstack-labs/autohub/internal/ui/features"
	"github.com/leapstack-labs/autohub/internal/ui/session"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.Listings, fixture.SessionStore, fixture.Site, testutil.NewTestLogger(t))

	return h, fixture
}

func TestHomePage(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.HomePage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"<title>AutoHub</title>",
		`<a href="/" class="nav-link active">Home</a>`,
		`<a href="/vehicles" class="nav-link">Vehicles</a>`,
		"Latest arrivals",
		`href="/vehicle/8712345"`,
		`href="/vehicle/9300301"`,
	} {
		assert.Contains(t, body, want, "response should contain %q", want)
	}
	assert.NotContains(t, body, "Recently viewed", "no history yet")
	assert.Equal(t, "6", fixture.API.LastQuery().Get("per_page"))
}

func TestHomePage_RecentlyViewed(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	seed := httptest.NewRecorder()
	seedReq := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, session.PushRecent(seedReq, fixture.SessionStore,
		session.RecentVehicle{ID: "9100200", Title: "2019 Volkswagen Polo Vivo 1.4 Trendline", Price: "R\u00a0154\u00a0995,00"}))
	require.NoError(t, session.Save(seed, seedReq))

	req := features.WithCookies(httptest.NewRequest(http.MethodGet, "/", nil), seed)
	rec := httptest.NewRecorder()

	h.HomePage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Recently viewed")
	assert.Contains(t, body, `id="recently-viewed"`)
	assert.Contains(t, body, "2019 Volkswagen Polo Vivo 1.4 Trendline")
	assert.Contains(t, body, "No photo", "recent entries without a thumbnail get the placeholder")
}

func TestHomePage_APIDown(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	fixture.API.Fail("vehicles", http.StatusServiceUnavailable)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.HomePage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "the landing page survives an API outage")
	body := rec.Body.String()
	assert.Contains(t, body, "Find your next car")
	assert.NotContains(t, body, "Latest arrivals")
}
