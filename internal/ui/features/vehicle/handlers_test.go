package vehicle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/testutil"
	"github.com/leapstack-labs/autohub/internal/ui/features"
	"github.com/leapstack-labs/autohub/internal/ui/session"
)

const corollaID = "8712345"

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.Listings, fixture.Store, fixture.SessionStore, fixture.Site, testutil.NewTestLogger(t))

	return h, fixture
}

func detailRequest(id, query string) *http.Request {
	target := "/vehicle/" + id
	if query != "" {
		target += "?" + query
	}
	return features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, target, nil), "id", id)
}

func TestDetailPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.DetailPage(rec, detailRequest(corollaID, ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<title>2022 Toyota Corolla Cross 1.8 XS - AutoHub</title>",
		`<meta name="description" content="One owner, full service history. Spare key &amp; manuals."`,
		`<a href="/brand/toyota">Toyota</a>`,
		`<a href="/brand/toyota/corolla-cross">Corolla Cross</a>`,
		`<span aria-current="page">1.8 XS</span>`,
		"<h1>2022 Toyota Corolla Cross 1.8 XS</h1>",
		"R\u00a0389\u00a0900,00",
		"<dt>Mileage</dt><dd>45 000 km</dd>",
		"<dt>Transmission</dt><dd>Automatic</dd>",
		"<dt>Fuel Type</dt><dd>Petrol</dd>",
		"<dt>Color</dt><dd>White</dd>",
		"<dt>Year</dt><dd>2022</dd>",
		"<dt>Variant</dt><dd>1.8 XS</dd>",
		`<p class="seller-name">Cape Auto Centre</p>`,
		`<p class="muted">Dealer</p>`,
		"<p>Bellville, Western Cape</p>",
		"<h2>Description</h2><p>One owner, full service history. Spare key &amp; manuals.</p>",
		`action="/vehicle/8712345/phone"`,
		"Show Contact Details",
		"<h2>Contact Cape Auto Centre</h2>",
		"Hi, I&#39;m interested in the 2022 Toyota Corolla Cross 1.8 XS. Please contact me with more information.</textarea>",
		"you agree to AutoHub's terms",
		`action="/vehicle/8712345/enquiries"`,
	} {
		assert.Contains(t, body, want)
	}

	assert.NotContains(t, body, "082 709 3821", "the phone number is only revealed on request")
	assert.NotContains(t, body, "Sipho Dlamini")
	assert.NotContains(t, body, "history.</p><p>Spare", "the description markup is flattened")
	assert.NotContains(t, body, "&lt;p&gt;", "the description markup is not escaped into the page")
}

func TestDetailPage_Gallery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		selected string
	}{
		{name: "defaults to the first image", query: "", selected: "0"},
		{name: "image parameter selects", query: "image=3", selected: "3"},
		{name: "past the end clamps", query: "image=99", selected: "4"},
		{name: "negative clamps", query: "image=-2", selected: "0"},
		{name: "garbage is ignored", query: "image=abc", selected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			rec := httptest.NewRecorder()
			h.DetailPage(rec, detailRequest(corollaID, tt.query))

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()

			thumbs := strings.Count(body, `class="gallery-thumb"`) + strings.Count(body, `class="gallery-thumb selected"`)
			assert.Equal(t, 5, thumbs, "one thumbnail per image")
			assert.Equal(t, 1, strings.Count(body, "gallery-thumb selected"))
			assert.Contains(t, body, `href="?image=`+tt.selected+`" class="gallery-thumb selected"`)
			assert.Contains(t, body, `toyota-corolla-cross.jpg?v=`+tt.selected+`" alt="2022 Toyota Corolla Cross 1.8 XS" data-attr:src=`)
			assert.Contains(t, body, `data-signals="{&#34;selectedImage&#34;:`+tt.selected+`}"`)
			assert.Contains(t, body, `alt="2022 Toyota Corolla Cross 1.8 XS - View 5"`)
		})
	}
}

func TestDetailPage_Variants(t *testing.T) {
	t.Run("no seller falls back to the agent", func(t *testing.T) {
		h, _ := setupTestHandlers(t)

		rec := httptest.NewRecorder()
		h.DetailPage(rec, detailRequest("9100200", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.NotContains(t, body, `class="seller"`)
		assert.Contains(t, body, "<h2>Contact Anele Mokoena</h2>")
	})

	t.Run("no photos", func(t *testing.T) {
		h, _ := setupTestHandlers(t)

		rec := httptest.NewRecorder()
		h.DetailPage(rec, detailRequest("9300301", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "No photos available")
		assert.NotContains(t, body, `id="main-image"`)
	})
}

func TestDetailPage_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		fail       int
		wantStatus int
		wantMsg    string
		noRequest  bool
	}{
		{name: "malformed id", id: "bad.id", wantStatus: http.StatusBadRequest, noRequest: true},
		{name: "empty envelope", id: "404404", wantStatus: http.StatusNotFound, wantMsg: "No vehicle data found"},
		{name: "upstream 404", id: corollaID, fail: http.StatusNotFound, wantStatus: http.StatusNotFound, wantMsg: "Failed to fetch vehicle data: Not Found"},
		{name: "upstream 500", id: corollaID, fail: http.StatusInternalServerError, wantStatus: http.StatusBadGateway, wantMsg: "Failed to fetch vehicle data: Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fixture := setupTestHandlers(t)
			if tt.fail != 0 {
				fixture.API.Fail(tt.id, tt.fail)
			}

			rec := httptest.NewRecorder()
			h.DetailPage(rec, detailRequest(tt.id, ""))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "<title>Error - AutoHub</title>")
			assert.Contains(t, body, `<meta name="description" content="Unable to load vehicle details."`)
			assert.Contains(t, body, "<h1>Error Loading Vehicle</h1>")
			assert.Contains(t, body, "Sorry, we couldn&#39;t load the vehicle details. "+tt.wantMsg)
			assert.Empty(t, rec.Result().Cookies(), "failed views are not remembered")
			if tt.noRequest {
				assert.Zero(t, fixture.API.Requests.Load())
			}
		})
	}
}

func TestDetailPage_RecentlyViewed(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.DetailPage(rec, detailRequest(corollaID, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	recent := session.Recent(features.WithCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec), fixture.SessionStore)
	require.Len(t, recent, 1)
	assert.Equal(t, corollaID, recent[0].ID)
	assert.Equal(t, "2022 Toyota Corolla Cross 1.8 XS", recent[0].Title)
	assert.Equal(t, "R\u00a0389\u00a0900,00", recent[0].Price)
	assert.True(t, strings.HasSuffix(recent[0].Thumbnail, "?v=0"))
}

func TestRevealPhone_Datastar(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.DatastarRequest(http.MethodPost, "/vehicle/8712345/phone", `{"selectedImage":0}`)
	req = features.RequestWithPathParam(req, "id", corollaID)
	rec := httptest.NewRecorder()

	h.RevealPhone(rec, req)

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "event:"))
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, `id="contact-details"`)
	assert.Contains(t, body, `<p class="agent">Sipho Dlamini</p>`)
	assert.Contains(t, body, `href="tel:0827093821"`)
	assert.Contains(t, body, ">082 709 3821</a>")

	counts, err := fixture.Store.RevealCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []enquiry.RevealCount{{VehicleID: corollaID, Count: 1}}, counts)
}

func TestRevealPhone_PlainPost(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.FormRequest("/vehicle/8712345/phone", url.Values{})
	req = features.RequestWithPathParam(req, "id", corollaID)
	rec := httptest.NewRecorder()

	h.RevealPhone(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, `class="contact-details revealed"`)
	assert.Contains(t, body, "082 709 3821")
	assert.NotContains(t, body, "Show Contact Details")

	counts, err := fixture.Store.RevealCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 1)
}

func TestRevealPhone_UnknownVehicle(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.DatastarRequest(http.MethodPost, "/vehicle/404404/phone", `{}`)
	req = features.RequestWithPathParam(req, "id", "404404")
	rec := httptest.NewRecorder()

	h.RevealPhone(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "console.error")
	assert.NotContains(t, body, "082 709 3821")

	counts, err := fixture.Store.RevealCounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func enquiryRequest(t *testing.T, signals string) *http.Request {
	t.Helper()
	req := features.DatastarRequest(http.MethodPost, "/vehicle/8712345/enquiries", signals)
	return features.RequestWithPathParam(req, "id", corollaID)
}

func TestSubmitEnquiry_Datastar(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.SubmitEnquiry(rec, enquiryRequest(t, `{"selectedImage":2,"enquiry":{"name":"Thandi Nkosi","email":"thandi@example.co.za","phone":"082 555 0101","message":"Is it still available?"}}`))

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "event:"))
	assert.Contains(t, body, `id="enquiry-status"`)
	assert.Contains(t, body, "Thank you, Thandi Nkosi. Your enquiry has been sent to Cape Auto Centre.")

	stored, err := fixture.Store.List(context.Background(), enquiry.ListOptions{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, corollaID, stored[0].VehicleID)
	assert.Equal(t, "2022 Toyota Corolla Cross 1.8 XS", stored[0].VehicleTitle)
	assert.Equal(t, "Cape Auto Centre", stored[0].DealerName)
	assert.Equal(t, "Is it still available?", stored[0].Message)

	t.Run("visitor is remembered for the next form", func(t *testing.T) {
		next := httptest.NewRecorder()
		h.DetailPage(next, features.WithCookies(detailRequest("9100200", ""), rec))

		page := next.Body.String()
		assert.Contains(t, page, `value="Thandi Nkosi"`)
		assert.Contains(t, page, `value="thandi@example.co.za"`)
		assert.Contains(t, page, "interested in the 2019 Volkswagen Polo Vivo 1.4 Trendline", "the message is per vehicle")
	})
}

func TestSubmitEnquiry_DatastarInvalid(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.SubmitEnquiry(rec, enquiryRequest(t, `{"enquiry":{"name":" ","email":"nope","phone":"12","message":""}}`))

	body := rec.Body.String()
	assert.Contains(t, body, "Please correct the following:")
	for _, msg := range []string{"Name is required", "Enter a valid email address", "Enter a valid phone number", "Message is required"} {
		assert.Contains(t, body, msg)
	}
	assert.Less(t, strings.Index(body, "Name is required"), strings.Index(body, "Message is required"))
	assert.Empty(t, rec.Result().Cookies())

	stored, err := fixture.Store.List(context.Background(), enquiry.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Thandi Nkosi"},
		"email":   {"thandi@example.co.za"},
		"phone":   {"082 555 0101"},
		"message": {"Is it still available?"},
	}
}

func TestSubmitEnquiry_FormPostRedirects(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.RequestWithPathParam(features.FormRequest("/vehicle/8712345/enquiries", validForm()), "id", corollaID)
	rec := httptest.NewRecorder()

	h.SubmitEnquiry(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/vehicle/8712345#enquiry", rec.Header().Get("Location"))
	assert.Len(t, rec.Result().Header.Values("Set-Cookie"), 1, "visitor and flash share one cookie")

	stored, err := fixture.Store.List(context.Background(), enquiry.ListOptions{VehicleID: corollaID})
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	next := httptest.NewRecorder()
	h.DetailPage(next, features.WithCookies(detailRequest(corollaID, ""), rec))
	assert.Contains(t, next.Body.String(), "Thank you, Thandi Nkosi. Your enquiry has been sent to Cape Auto Centre.")
	assert.Len(t, next.Result().Header.Values("Set-Cookie"), 1, "flash read and recent push share one cookie")

	again := httptest.NewRecorder()
	h.DetailPage(again, features.WithCookies(detailRequest(corollaID, ""), next))
	assert.NotContains(t, again.Body.String(), "Your enquiry has been sent", "the flash shows once")
	assert.Contains(t, again.Body.String(), `value="Thandi Nkosi"`)
}

func TestSubmitEnquiry_FormPostInvalid(t *testing.T) {
	h, _ := setupTestHandlers(t)

	form := validForm()
	form.Set("email", "thandi-at-example")
	req := features.RequestWithPathParam(features.FormRequest("/vehicle/8712345/enquiries", form), "id", corollaID)
	rec := httptest.NewRecorder()

	h.SubmitEnquiry(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<p class="field-error">Enter a valid email address</p>`)
	assert.Contains(t, body, `value="Thandi Nkosi"`, "entered values survive the round trip")
	assert.Contains(t, body, "Is it still available?</textarea>")
}

func TestSubmitEnquiry_StoreFailure(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	require.NoError(t, fixture.Store.Close())

	req := features.RequestWithPathParam(features.FormRequest("/vehicle/8712345/enquiries", validForm()), "id", corollaID)
	rec := httptest.NewRecorder()

	h.SubmitEnquiry(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sorry, we couldn&#39;t send your enquiry. Please try again.")
}

func TestSubmitEnquiry_UnknownVehicle(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(features.FormRequest("/vehicle/404404/enquiries", validForm()), "id", "404404")
	rec := httptest.NewRecorder()

	h.SubmitEnquiry(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error Loading Vehicle")
}
