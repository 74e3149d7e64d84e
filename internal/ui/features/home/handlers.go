package home

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/features/home/pages"
	"github.com/leapstack-labs/autohub/internal/ui/session"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	listings     common.Listings
	sessionStore sessions.Store
	site         common.Site
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(listings common.Listings, sessionStore sessions.Store, site common.Site, logger *slog.Logger) *Handlers {
	return &Handlers{
		listings:     listings,
		sessionStore: sessionStore,
		site:         site,
		logger:       logger,
	}
}

// HomePage renders the landing page. A failing API only hides the latest
// arrivals; the page itself still renders.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	view := pages.HomeView{
		Recent: recentCards(session.Recent(r, h.sessionStore)),
	}

	latest, err := h.listings.Vehicles(r.Context(), listing.Query{Page: 1, PerPage: LatestCount})
	if err != nil {
		h.logger.Warn("failed to load latest vehicles", "error", err)
	} else {
		view.Latest = latestCards(latest, h.site.Images)
	}

	meta := common.PageMeta{
		Title:       h.site.Name,
		Description: homeDescription,
		CurrentPath: "/",
		Site:        h.site,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.HomePage(meta, view).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
