package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jusunglee/bahn-go/internal/timetables"
	"github.com/jusunglee/bahn-go/internal/transport"
	"github.com/jusunglee/bahn-go/pkg/bahn"
	"github.com/rs/zerolog/log"
)

// DefaultRadius is used by /stations/near when no radius is given, in meters
const DefaultRadius = 1000

// Handler handles HTTP requests
type Handler struct {
	client   bahn.Client
	location *time.Location
	now      func() time.Time
}

// NewHandler creates a new HTTP handler. Plan dates and default hours are
// taken in location.
func NewHandler(client bahn.Client, location *time.Location) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		client:   client,
		location: location,
		now:      time.Now,
	}
}

// RegisterRoutes registers all routes. Routes match the escaped path so a
// search pattern may contain an encoded slash.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.UseEncodedPath()
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/stations/near", h.handleNear).Methods("GET")
	r.HandleFunc("/stations/search/{pattern}", h.handleSearch).Methods("GET")
	r.HandleFunc("/stations/{eva:[0-9]+}/plan", h.handlePlan).Methods("GET")
}

// Response wraps API responses
type Response struct {
	Data interface{} `json:"data"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title":  "bahn-go",
		"readme": "Visit https://github.com/jusunglee/bahn-go for more info",
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleNear(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	latStr := query.Get("lat")
	lonStr := query.Get("lon")

	if latStr == "" || lonStr == "" {
		h.writeError(w, "Missing lat/lon parameter", http.StatusBadRequest)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		h.writeError(w, "Invalid lat parameter", http.StatusBadRequest)
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
		h.writeError(w, "Invalid lon parameter", http.StatusBadRequest)
		return
	}

	radius := float64(DefaultRadius)
	if radiusStr := query.Get("radius"); radiusStr != "" {
		radius, err = strconv.ParseFloat(radiusStr, 64)
		if err != nil || math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
			h.writeError(w, "Invalid radius parameter", http.StatusBadRequest)
			return
		}
	}

	stations, err := h.client.FindStationsNear(lon, lat, radius)
	if err != nil {
		h.writeClientError(w, r, err)
		return
	}

	h.writeJSON(w, Response{Data: stations})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	pattern, err := url.PathUnescape(mux.Vars(r)["pattern"])
	if err != nil || pattern == "" {
		h.writeError(w, "Invalid search pattern", http.StatusBadRequest)
		return
	}

	stations, err := h.client.FetchStationsByPattern(r.Context(), pattern)
	if err != nil {
		h.writeClientError(w, r, err)
		return
	}

	h.writeJSON(w, Response{Data: stations.Stations})
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	eva, err := strconv.ParseInt(mux.Vars(r)["eva"], 10, 64)
	if err != nil {
		h.writeError(w, "Invalid eva number", http.StatusBadRequest)
		return
	}

	now := h.now().In(h.location)
	query := r.URL.Query()

	date := now
	if dateStr := query.Get("date"); dateStr != "" {
		date, err = time.ParseInLocation("2006-01-02", dateStr, h.location)
		if err != nil {
			h.writeError(w, "Invalid date parameter, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	hour := now.Hour()
	if hourStr := query.Get("hour"); hourStr != "" {
		hour, err = strconv.Atoi(hourStr)
		if err != nil || hour < 0 || hour > 23 {
			h.writeError(w, "Invalid hour parameter", http.StatusBadRequest)
			return
		}
	}

	plan, err := h.client.FetchStationPlan(r.Context(), eva, date, hour)
	if err != nil {
		h.writeClientError(w, r, err)
		return
	}

	h.writeJSON(w, Response{Data: plan.Timetable})
}

// statusFor maps client errors onto HTTP status codes
func statusFor(err error) int {
	var statusErr *transport.StatusError
	switch {
	case errors.Is(err, bahn.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.As(err, &statusErr), errors.Is(err, timetables.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeClientError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log.Ctx(r.Context()).Error().
		Err(err).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("Request failed")
	h.writeError(w, err.Error(), status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
