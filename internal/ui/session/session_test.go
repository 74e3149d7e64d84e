package session

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/autohub/internal/enquiry"
)

func newStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

// jar replays cookies between requests like a browser would.
type jar struct {
	cookies []*http.Cookie
}

func (j *jar) request() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range j.cookies {
		r.AddCookie(c)
	}
	return r
}

func (j *jar) keep(rec *httptest.ResponseRecorder) {
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		j.cookies = cookies
	}
}

func TestRecent(t *testing.T) {
	store := newStore()
	j := &jar{}

	assert.Empty(t, Recent(j.request(), store))

	for i := range MaxRecent + 2 {
		rec := httptest.NewRecorder()
		r := j.request()
		v := RecentVehicle{ID: strconv.Itoa(i), Title: "Vehicle " + strconv.Itoa(i)}
		require.NoError(t, PushRecent(r, store, v))
		require.NoError(t, Save(rec, r))
		j.keep(rec)
	}

	recent := Recent(j.request(), store)
	require.Len(t, recent, MaxRecent)
	assert.Equal(t, "7", recent[0].ID, "newest first")
	assert.Equal(t, "2", recent[MaxRecent-1].ID)

	t.Run("revisit moves to front without duplicating", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := j.request()
		require.NoError(t, PushRecent(r, store, RecentVehicle{ID: "4", Title: "Vehicle 4"}))
		require.NoError(t, Save(rec, r))
		j.keep(rec)

		recent := Recent(j.request(), store)
		require.Len(t, recent, MaxRecent)
		assert.Equal(t, "4", recent[0].ID)
		assert.Equal(t, "7", recent[1].ID)

		seen := map[string]bool{}
		for _, v := range recent {
			assert.False(t, seen[v.ID], "duplicate %s", v.ID)
			seen[v.ID] = true
		}
	})
}

func TestVisitor(t *testing.T) {
	store := newStore()
	j := &jar{}

	_, ok := Visitor(j.request(), store)
	assert.False(t, ok)

	rec := httptest.NewRecorder()
	r := j.request()
	require.NoError(t, RememberVisitor(r, store, enquiry.Contact{
		Name: " Thandi ", Email: "thandi@example.co.za", Phone: "082 555 0101", Message: "About the Polo",
	}))
	require.NoError(t, Save(rec, r))
	j.keep(rec)

	c, ok := Visitor(j.request(), store)
	require.True(t, ok)
	assert.Equal(t, enquiry.Contact{Name: "Thandi", Email: "thandi@example.co.za", Phone: "082 555 0101"}, c)
}

func TestFlashes(t *testing.T) {
	store := newStore()
	j := &jar{}

	rec := httptest.NewRecorder()
	r := j.request()
	AddFlash(r, store, "Your enquiry has been sent.")
	require.NoError(t, Save(rec, r))
	j.keep(rec)

	rec = httptest.NewRecorder()
	r = j.request()
	assert.Equal(t, []string{"Your enquiry has been sent."}, Flashes(r, store))
	require.NoError(t, Save(rec, r))
	j.keep(rec)

	assert.Empty(t, Flashes(j.request(), store), "flashes are read once")
}

func TestSave_OneCookiePerRequest(t *testing.T) {
	store := newStore()
	j := &jar{}

	rec := httptest.NewRecorder()
	r := j.request()
	require.NoError(t, RememberVisitor(r, store, enquiry.Contact{Name: "Thandi", Email: "thandi@example.co.za", Phone: "082 555 0101"}))
	AddFlash(r, store, "Your enquiry has been sent.")
	require.NoError(t, PushRecent(r, store, RecentVehicle{ID: "1"}))
	require.NoError(t, Save(rec, r))

	assert.Len(t, rec.Result().Header.Values("Set-Cookie"), 1)
	j.keep(rec)

	next := j.request()
	_, ok := Visitor(next, store)
	assert.True(t, ok)
	assert.Len(t, Recent(next, store), 1)
	assert.Equal(t, []string{"Your enquiry has been sent."}, Flashes(next, store))
}

func TestSave_NothingTouched(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, Save(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())
}

func TestTamperedCookieStartsFresh(t *testing.T) {
	store := newStore()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: Name, Value: "not-a-valid-cookie"})

	assert.Empty(t, Recent(r, store))

	rec := httptest.NewRecorder()
	require.NoError(t, PushRecent(r, store, RecentVehicle{ID: "1"}))
	require.NoError(t, Save(rec, r))
	assert.Len(t, rec.Result().Cookies(), 1)
}
