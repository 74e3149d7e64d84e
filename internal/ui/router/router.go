// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/features/common/components"
	homeFeature "github.com/leapstack-labs/autohub/internal/ui/features/home"
	infoFeature "github.com/leapstack-labs/autohub/internal/ui/features/info"
	vehicleFeature "github.com/leapstack-labs/autohub/internal/ui/features/vehicle"
	vehiclesFeature "github.com/leapstack-labs/autohub/internal/ui/features/vehicles"
	"github.com/leapstack-labs/autohub/internal/ui/notifier"
	"github.com/leapstack-labs/autohub/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	listings common.Listings,
	store enquiry.Store,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	site common.Site,
	logger *slog.Logger,
) error {
	// Hot reload endpoint for dev mode
	if site.IsDev {
		setupReload(router, notify)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, listings, sessionStore, site, logger); err != nil {
		return err
	}

	if err := vehiclesFeature.SetupRoutes(router, listings, site, logger); err != nil {
		return err
	}

	if err := vehicleFeature.SetupRoutes(router, listings, store, sessionStore, site, logger); err != nil {
		return err
	}

	if err := infoFeature.SetupRoutes(router, site); err != nil {
		return err
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		meta := common.PageMeta{
			Title:       common.PageTitle("Not Found", site.Name),
			CurrentPath: r.URL.Path,
			Site:        site,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = components.NotFoundPage(meta).Render(r.Context(), w)
	})

	return nil
}

// setupReload wires the dev reload loop. Each open tab holds a /reload
// stream; a notifier broadcast (asset change or /hotreload) makes every tab
// reload. The first stream after a restart reloads immediately so tabs pick
// up the new binary.
func setupReload(router chi.Router, notify *notifier.Notifier) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		updates := notify.Subscribe()
		defer notify.Unsubscribe(updates)

		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)

		for {
			select {
			case <-updates:
				reload()
			case <-r.Context().Done():
				return
			}
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		notify.Broadcast()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
