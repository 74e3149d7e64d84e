package vehicles

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/autohub/internal/ui/features/common"
)

// SetupRoutes configures routes for the catalog feature.
func SetupRoutes(router chi.Router, listings common.Listings, site common.Site, logger *slog.Logger) error {
	handlers := NewHandlers(listings, site, logger)

	router.Get("/vehicles", handlers.CatalogPage)
	router.Route("/brand/{make}", func(r chi.Router) {
		r.Get("/", handlers.BrandPage)
		r.Get("/{model}", handlers.ModelPage)
	})

	return nil
}
