package home

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/autohub/internal/ui/features/common"
)

// SetupRoutes configures routes for the home feature.
func SetupRoutes(
	router chi.Router,
	listings common.Listings,
	sessionStore sessions.Store,
	site common.Site,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(listings, sessionStore, site, logger)

	router.Get("/", handlers.HomePage)

	return nil
}
