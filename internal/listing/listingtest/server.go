// Package listingtest provides an in-process stand-in for the listing API.
package listingtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/leapstack-labs/autohub/internal/listing"
)

// PerPage is the page size the fake API uses when none is requested.
const PerPage = 2

// Server serves vehicles in the API's envelope format.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	vehicles map[string]*listing.Vehicle
	failures map[string]int

	// Requests counts every request the server has answered.
	Requests atomic.Int64
	// LastHeader holds the headers of the most recent request.
	LastHeader atomic.Value
	lastQuery  atomic.Value
}

// NewServer starts a fake API holding the given vehicles. It is closed when the test ends.
func NewServer(t testing.TB, vehicles ...*listing.Vehicle) *Server {
	t.Helper()

	s := &Server{
		vehicles: make(map[string]*listing.Vehicle),
		failures: make(map[string]int),
	}
	for _, v := range vehicles {
		s.vehicles[v.ID] = v
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/vehicle/{id}", s.handleVehicle)
	mux.HandleFunc("GET /api/vehicles", s.handleVehicles)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Requests.Add(1)
		s.LastHeader.Store(r.Header.Clone())
		s.lastQuery.Store(r.URL.Query())
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)

	return s
}

// Fail makes requests for key answer with status. Key is a vehicle id, or
// "vehicles" for the catalog endpoint.
func (s *Server) Fail(key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[key] = status
}

// Header returns the headers of the most recent request.
func (s *Server) Header() http.Header {
	h, _ := s.LastHeader.Load().(http.Header)
	return h
}

// LastQuery returns the query parameters of the most recent request.
func (s *Server) LastQuery() url.Values {
	q, _ := s.lastQuery.Load().(url.Values)
	return q
}

func (s *Server) failure(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[key]
}

func (s *Server) handleVehicle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if status := s.failure(id); status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	s.mu.Lock()
	v, ok := s.vehicles[id]
	s.mu.Unlock()

	body := map[string]any{"data": []any{}}
	if ok {
		body["data"] = []any{resource(v)}
		if v.Seller != nil {
			body["included"] = []any{sellerResource(v)}
		}
	}
	writeJSON(w, map[string]any{"cache": body})
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	if status := s.failure("vehicles"); status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	page = max(page, 1)
	mk := r.URL.Query().Get("make")
	model := r.URL.Query().Get("model")
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 {
		perPage = PerPage
	}

	s.mu.Lock()
	var matched []*listing.Vehicle
	for _, v := range s.vehicles {
		if mk != "" && listing.Slug(v.Make) != listing.Slug(mk) {
			continue
		}
		if model != "" && listing.Slug(v.Model) != listing.Slug(model) {
			continue
		}
		matched = append(matched, v)
	}
	s.mu.Unlock()
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start := min((page-1)*perPage, len(matched))
	end := min(start+perPage, len(matched))

	data := make([]any, 0, end-start)
	included := make([]any, 0, end-start)
	for _, v := range matched[start:end] {
		data = append(data, resource(v))
		if v.Seller != nil {
			included = append(included, sellerResource(v))
		}
	}

	writeJSON(w, map[string]any{"cache": map[string]any{
		"data":     data,
		"included": included,
		"meta":     map[string]int{"page": page, "per_page": perPage, "total": len(matched)},
	}})
}

func resource(v *listing.Vehicle) map[string]any {
	raw, _ := json.Marshal(v)
	attrs := map[string]any{}
	_ = json.Unmarshal(raw, &attrs)
	delete(attrs, "id")
	delete(attrs, "seller")

	res := map[string]any{"id": v.ID, "type": "vehicle", "attributes": attrs}
	if v.Seller != nil {
		res["relationships"] = map[string]any{
			"seller": map[string]any{"data": map[string]string{"id": sellerID(v), "type": "seller"}},
		}
	}
	return res
}

func sellerResource(v *listing.Vehicle) map[string]any {
	return map[string]any{"id": sellerID(v), "type": "seller", "attributes": v.Seller}
}

func sellerID(v *listing.Vehicle) string {
	return "seller-" + strings.ToLower(v.ID)
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

// Corolla returns a dealer-listed vehicle with five photos.
func Corolla() *listing.Vehicle {
	return &listing.Vehicle{
		ID:           "8712345",
		Make:         "Toyota",
		Model:        "Corolla Cross",
		Year:         2022,
		Price:        389900,
		Mileage:      "45 000 km",
		Description:  "<p>One owner, full service history.</p><p>Spare key &amp; manuals.</p>",
		Image:        listing.Image{Version: 3, Count: 5, Path: "2022/07/14", Name: "toyota-corolla-cross", Extension: ".jpg"},
		Title:        "2022 Toyota Corolla Cross 1.8 XS",
		Variant:      "1.8 XS",
		Colour:       "White",
		Transmission: "Automatic",
		FuelType:     "Petrol",
		AgentName:    "Sipho Dlamini",
		Seller: &listing.Seller{
			Name:       "Cape Auto Centre",
			SellerType: "dealer",
			Locality:   "Bellville",
			Province:   "Western Cape",
			Lat:        -33.9,
			Lng:        18.63,
		},
	}
}

// Polo returns a vehicle listed without a seller record.
func Polo() *listing.Vehicle {
	return &listing.Vehicle{
		ID:           "9100200",
		Make:         "Volkswagen",
		Model:        "Polo Vivo",
		Year:         2019,
		Price:        154995,
		Mileage:      "88 500 km",
		Description:  "Neat hatchback.",
		Image:        listing.Image{Version: 1, Count: 2, Path: "2019/03/02", Name: "vw-polo", Extension: ".jpg"},
		Title:        "2019 Volkswagen Polo Vivo 1.4 Trendline",
		Variant:      "1.4 Trendline",
		Colour:       "Silver",
		Transmission: "Manual",
		FuelType:     "Petrol",
		AgentName:    "Anele Mokoena",
	}
}

// Ranger returns a third vehicle so catalog tests can page.
func Ranger() *listing.Vehicle {
	return &listing.Vehicle{
		ID:           "9300301",
		Make:         "Ford",
		Model:        "Ranger",
		Year:         2021,
		Price:        529900,
		Mileage:      "61 200 km",
		Description:  "Double cab.",
		Image:        listing.Image{Version: 1, Count: 0, Path: "2021/11/20", Name: "ford-ranger", Extension: ".jpg"},
		Title:        "2021 Ford Ranger 2.0 Wildtrak",
		Variant:      "2.0 Wildtrak",
		Colour:       "Blue",
		Transmission: "Automatic",
		FuelType:     "Diesel",
		AgentName:    "Pieter van Wyk",
		Seller: &listing.Seller{
			Name:       "Highveld Motors",
			SellerType: "dealer",
			Locality:   "Centurion",
			Province:   "Gauteng",
		},
	}
}
