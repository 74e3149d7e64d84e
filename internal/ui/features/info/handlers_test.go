package info

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/autohub/internal/ui/features/common"
)

func TestInfoPages(t *testing.T) {
	h := NewHandlers(common.Site{Name: "AutoHub", Phone: "082 709 3821"})

	tests := []struct {
		name     string
		path     string
		handler  http.HandlerFunc
		wantBody []string
	}{
		{
			name:    "about",
			path:    "/about",
			handler: h.AboutPage,
			wantBody: []string{
				"<title>About - AutoHub</title>",
				"<h1>About AutoHub</h1>",
				`<a href="/about" class="nav-link active">About</a>`,
			},
		},
		{
			name:    "contact",
			path:    "/contact",
			handler: h.ContactPage,
			wantBody: []string{
				"<title>Contact - AutoHub</title>",
				`<a href="/contact" class="nav-link active">Contact</a>`,
				`<a href="tel:0827093821" class="phone">082 709 3821</a>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}
