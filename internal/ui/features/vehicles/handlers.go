package vehicles

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/features/vehicles/pages"
)

// Handlers provides HTTP handlers for the catalog.
type Handlers struct {
	listings common.Listings
	site     common.Site
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(listings common.Listings, site common.Site, logger *slog.Logger) *Handlers {
	return &Handlers{
		listings: listings,
		site:     site,
		logger:   logger,
	}
}

// CatalogPage renders /vehicles.
func (h *Handlers) CatalogPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, catalogRequest{basePath: "/vehicles"})
}

// BrandPage renders /brand/{make}.
func (h *Handlers) BrandPage(w http.ResponseWriter, r *http.Request) {
	mk := chi.URLParam(r, "make")
	h.render(w, r, catalogRequest{basePath: common.BrandHref(mk), make: mk})
}

// ModelPage renders /brand/{make}/{model}.
func (h *Handlers) ModelPage(w http.ResponseWriter, r *http.Request) {
	mk, model := chi.URLParam(r, "make"), chi.URLParam(r, "model")
	h.render(w, r, catalogRequest{basePath: common.ModelHref(mk, model), make: mk, model: model})
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, req catalogRequest) {
	req.page = parsePage(r.URL.Query().Get("page"))

	meta := common.PageMeta{
		Title:       common.PageTitle(req.heading(), h.site.Name),
		Description: "Browse " + req.heading() + " on " + h.site.Name + ".",
		CurrentPath: r.URL.Path,
		Site:        h.site,
	}

	page, err := h.listings.Vehicles(r.Context(), listing.Query{
		Page:    req.page,
		PerPage: h.site.PageSize,
		Make:    req.make,
		Model:   req.model,
	})

	var view pages.CatalogView
	if err != nil {
		h.logger.Error("failed to load catalog", "path", r.URL.Path, "page", req.page, "error", err)
		view = errorCatalogView(req, err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(common.ErrorStatus(err))
	} else {
		view = buildCatalogView(req, page, h.site.Images)
	}

	if err := pages.CatalogPage(meta, view).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
