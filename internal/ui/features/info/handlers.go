// Package info provides the static About and Contact pages.
package info

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/features/info/pages"
)

// Handlers provides HTTP handlers for the info pages.
type Handlers struct {
	site common.Site
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(site common.Site) *Handlers {
	return &Handlers{site: site}
}

// AboutPage renders /about.
func (h *Handlers) AboutPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "About", pages.AboutPage)
}

// ContactPage renders /contact.
func (h *Handlers) ContactPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "Contact", pages.ContactPage)
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, title string, page func(common.PageMeta) templ.Component) {
	meta := common.PageMeta{
		Title:       common.PageTitle(title, h.site.Name),
		CurrentPath: r.URL.Path,
		Site:        h.site,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page(meta).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
