package vehicle

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
)

// SetupRoutes configures routes for the vehicle detail feature.
func SetupRoutes(
	router chi.Router,
	listings common.Listings,
	store enquiry.Store,
	sessionStore sessions.Store,
	site common.Site,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(listings, store, sessionStore, site, logger)

	router.Route("/vehicle/{id}", func(r chi.Router) {
		r.Get("/", handlers.DetailPage)
		r.Post("/phone", handlers.RevealPhone)
		r.Post("/enquiries", handlers.SubmitEnquiry)
	})

	return nil
}
