package vehicle

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/features/vehicle/pages"
	"github.com/leapstack-labs/autohub/internal/ui/session"
)

// maxFormBytes bounds enquiry request bodies.
const maxFormBytes = 64 << 10

// Handlers provides HTTP handlers for the vehicle detail feature.
type Handlers struct {
	listings     common.Listings
	store        enquiry.Store
	sessionStore sessions.Store
	site         common.Site
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	listings common.Listings,
	store enquiry.Store,
	sessionStore sessions.Store,
	site common.Site,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		listings:     listings,
		store:        store,
		sessionStore: sessionStore,
		site:         site,
		logger:       logger,
	}
}

// enquirySignals is the datastar signal tree the enquiry form binds to.
type enquirySignals struct {
	Enquiry enquiry.Contact `json:"enquiry"`
}

func isDatastar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}

// DetailPage renders /vehicle/{id}. Every successful view is pushed onto the
// visitor's recently viewed list.
func (h *Handlers) DetailPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	v, err := h.listings.Vehicle(r.Context(), id)
	if err != nil {
		h.renderError(w, r, id, err)
		return
	}

	view := buildDetailView(v, h.site, parseImage(r.URL.Query().Get("image")))
	if visitor, ok := session.Visitor(r, h.sessionStore); ok {
		prefill(&view.Form, visitor)
	}
	if flashes := session.Flashes(r, h.sessionStore); len(flashes) > 0 {
		view.Form.Status.Success = flashes[len(flashes)-1]
	}
	if err := session.PushRecent(r, h.sessionStore, recentVehicle(view)); err != nil {
		h.logger.Warn("failed to update recently viewed", "id", v.ID, "error", err)
	}
	if err := session.Save(w, r); err != nil {
		h.logger.Warn("failed to save session", "id", v.ID, "error", err)
	}

	h.render(w, r, v, view, http.StatusOK)
}

// RevealPhone records a reveal and shows the agent and dealer phone. Datastar
// requests get the contact block patched in; plain form posts get the whole
// page with the block revealed.
func (h *Handlers) RevealPhone(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	v, err := h.listings.Vehicle(r.Context(), id)
	if err != nil {
		if isDatastar(r) {
			sse := datastar.NewSSE(w, r)
			_ = sse.ConsoleError(err)
			return
		}
		h.renderError(w, r, id, err)
		return
	}

	if err := h.store.RecordReveal(r.Context(), v.ID); err != nil {
		h.logger.Error("failed to record phone reveal", "id", v.ID, "error", err)
	}
	contact := contactView(v, h.site)

	if !isDatastar(r) {
		view := buildDetailView(v, h.site, 0)
		view.Contact = &contact
		if visitor, ok := session.Visitor(r, h.sessionStore); ok {
			prefill(&view.Form, visitor)
		}
		h.render(w, r, v, view, http.StatusOK)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(pages.ContactDetails(contact)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// SubmitEnquiry validates and stores a contact form submission.
func (h *Handlers) SubmitEnquiry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if isDatastar(r) {
		h.submitDatastar(w, r)
		return
	}
	h.submitForm(w, r)
}

func (h *Handlers) submitDatastar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Signals must be read before the SSE stream takes over the response.
	var signals enquirySignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	var status pages.StatusView
	v, err := h.listings.Vehicle(r.Context(), id)
	if err != nil {
		h.logger.Warn("enquiry for unavailable vehicle", "id", id, "error", err)
		status = pages.StatusView{Errors: []string{sendFailed}}
	} else {
		status, _ = h.submit(r, v, signals.Enquiry)
		h.saveSession(w, r)
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(pages.EnquiryStatus(status)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) submitForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	v, err := h.listings.Vehicle(r.Context(), id)
	if err != nil {
		h.renderError(w, r, id, err)
		return
	}

	contact := enquiry.Contact{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Message: r.PostFormValue("message"),
	}

	status, verrs := h.submit(r, v, contact)
	if status.Success != "" {
		session.AddFlash(r, h.sessionStore, status.Success)
		h.saveSession(w, r)
		http.Redirect(w, r, common.VehicleHref(v.ID)+"#enquiry", http.StatusSeeOther)
		return
	}

	view := buildDetailView(v, h.site, 0)
	view.Form.Contact = contact.Trimmed()
	view.Form.Errors = verrs
	view.Form.Status = status

	code := http.StatusInternalServerError
	if verrs != nil {
		code = http.StatusUnprocessableEntity
	}
	h.render(w, r, v, view, code)
}

// saveSession writes the session cookie. It must run before the response body starts.
func (h *Handlers) saveSession(w http.ResponseWriter, r *http.Request) {
	if err := session.Save(w, r); err != nil {
		h.logger.Warn("failed to save session", "error", err)
	}
}

// submit validates and stores the enquiry. On success the visitor's details
// are put in the session; the caller saves it.
func (h *Handlers) submit(r *http.Request, v *listing.Vehicle, c enquiry.Contact) (pages.StatusView, enquiry.ValidationErrors) {
	e := enquiry.New(v.ID, v.Title, v.DealerName(), c)
	if err := e.Validate(); err != nil {
		var verrs enquiry.ValidationErrors
		if errors.As(err, &verrs) {
			return pages.StatusView{Errors: orderedErrors(verrs)}, verrs
		}
		return pages.StatusView{Errors: []string{err.Error()}}, nil
	}

	if err := h.store.Create(r.Context(), e); err != nil {
		h.logger.Error("failed to store enquiry", "id", v.ID, "error", err)
		return pages.StatusView{Errors: []string{sendFailed}}, nil
	}

	if err := session.RememberVisitor(r, h.sessionStore, e.Contact()); err != nil {
		h.logger.Warn("failed to remember visitor", "error", err)
	}
	return pages.StatusView{Success: successMessage(e.Name, e.DealerName)}, nil
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, v *listing.Vehicle, view pages.DetailView, status int) {
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	meta := detailMeta(v, h.site, common.VehicleHref(v.ID))
	if err := pages.DetailPage(meta, view).Render(r.Context(), w); err != nil {
		if status != http.StatusOK {
			h.logger.Error("failed to render vehicle page", "id", v.ID, "error", err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// renderError answers 400 for a malformed id, 404 for a missing vehicle and
// 502 when the API itself failed.
func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, id string, err error) {
	status := common.ErrorStatus(err)
	if status == http.StatusBadGateway {
		h.logger.Error("failed to load vehicle", "id", id, "error", err)
	} else {
		h.logger.Warn("vehicle unavailable", "id", id, "status", status, "error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	view := common.ErrorView{Title: errorTitle, Message: common.ErrorMessage(errorMessage, err)}
	if err := pages.ErrorPage(errorMeta(h.site, r.URL.Path), view).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render error page", "error", err)
	}
}
