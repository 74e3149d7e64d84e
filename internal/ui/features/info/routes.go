package info

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/autohub/internal/ui/features/common"
)

// SetupRoutes configures routes for the info pages.
func SetupRoutes(router chi.Router, site common.Site) error {
	handlers := NewHandlers(site)

	router.Get("/about", handlers.AboutPage)
	router.Get("/contact", handlers.ContactPage)

	return nil
}
