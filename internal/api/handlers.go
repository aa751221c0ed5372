package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maltedev/partpicker-scraper/internal/parser"
	"github.com/maltedev/partpicker-scraper/internal/scraper"
	"github.com/maltedev/partpicker-scraper/internal/urls"
)

type Handlers struct {
	client *scraper.Client
	logger *slog.Logger
}

func NewHandlers(client *scraper.Client, logger *slog.Logger) *Handlers {
	return &Handlers{
		client: client,
		logger: logger,
	}
}

// GetPart handles single product extraction by identifier or full URL.
func (h *Handlers) GetPart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "part identifier is required")
		return
	}

	part, err := h.client.GetPart(r.Context(), id, r.URL.Query().Get("region"))
	if err != nil {
		h.respondScrapeError(w, r, "part", id, err)
		return
	}

	h.respondJSON(w, http.StatusOK, part)
}

// GetPartReviews handles paginated review extraction for a product.
func (h *Handlers) GetPartReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "part identifier is required")
		return
	}

	page := queryInt(r, "page", 1)
	rating := queryInt(r, "rating", 0)

	result, err := h.client.GetPartReviews(r.Context(), id, page, rating, r.URL.Query().Get("region"))
	if err != nil {
		h.respondScrapeError(w, r, "reviews", id, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetPartList handles saved part list extraction.
func (h *Handlers) GetPartList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "list identifier is required")
		return
	}

	list, err := h.client.GetPartList(r.Context(), id, r.URL.Query().Get("region"))
	if err != nil {
		h.respondScrapeError(w, r, "list", id, err)
		return
	}

	h.respondJSON(w, http.StatusOK, list)
}

// Search handles paginated product search.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.respondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	page := queryInt(r, "page", 1)

	result, err := h.client.Search(r.Context(), query, page, r.URL.Query().Get("region"))
	if err != nil {
		h.respondScrapeError(w, r, "search", query, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondScrapeError maps scraping failures to HTTP statuses. Upstream
// refusals surface as 429, extraction failures as 502 so callers can
// tell their own bad input apart from upstream trouble.
func (h *Handlers) respondScrapeError(w http.ResponseWriter, r *http.Request, resource, id string, err error) {
	h.logger.Error("scrape failed",
		"resource", resource,
		"id", id,
		"error", err,
	)

	switch {
	case errors.Is(err, urls.ErrInvalidIdentifier), errors.Is(err, urls.ErrInvalidRating), errors.Is(err, urls.ErrInvalidRegion):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, scraper.ErrRateLimited):
		h.respondError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, scraper.ErrChallengeExceeded), errors.Is(err, parser.ErrMalformedDocument):
		h.respondError(w, http.StatusBadGateway, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return defaultValue
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
