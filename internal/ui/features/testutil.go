// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/listing/listingtest"
	"github.com/leapstack-labs/autohub/internal/testutil"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/notifier"
)

// TestSessionSecret signs cookies in handler tests.
const TestSessionSecret = "test-secret-key-32-bytes-long!!"

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	API          *listingtest.Server
	Listings     *listing.Client
	Store        *enquiry.SQLStore
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Site         common.Site
}

// SetupTestFixture starts a fake listing API holding vehicles (the three
// listingtest vehicles when none are given) and opens an in-memory store.
func SetupTestFixture(t *testing.T, vehicles ...*listing.Vehicle) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	if len(vehicles) == 0 {
		vehicles = []*listing.Vehicle{listingtest.Corolla(), listingtest.Polo(), listingtest.Ranger()}
	}
	api := listingtest.NewServer(t, vehicles...)

	client, err := listing.NewClient(listing.Config{
		BaseURL: api.URL,
		Timeout: 5 * time.Second,
		Logger:  logger,
	})
	require.NoError(t, err)

	store, err := enquiry.Open(context.Background(), enquiry.Config{Driver: enquiry.DriverSQLite, DSN: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestFixture{
		API:          api,
		Listings:     client,
		Store:        store,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		Site: common.Site{
			Name:     "AutoHub",
			Phone:    "082 709 3821",
			PageSize: 2,
		},
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout. The context is
// cancelled when the test ends.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	t.Helper()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// DatastarRequest builds a request the way the datastar client sends it:
// signals as a JSON body and the Datastar-Request header set.
func DatastarRequest(method, target, signals string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(signals))
	r.Header.Set("Datastar-Request", "true")
	r.Header.Set("Content-Type", "application/json")
	return r
}

// FormRequest builds a urlencoded form POST.
func FormRequest(target string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// WithCookies copies the cookies set on rec onto r.
func WithCookies(r *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

// NewTestNotifier creates a notifier for testing.
func NewTestNotifier() *notifier.Notifier {
	return notifier.New()
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte(TestSessionSecret))
}
