package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/prodyscan/ProdyScan/internal/ai"
	"github.com/prodyscan/ProdyScan/internal/analyzer"
	"github.com/prodyscan/ProdyScan/internal/models"
	"github.com/prodyscan/ProdyScan/internal/shops"
	"github.com/prodyscan/ProdyScan/internal/tracking"
)

// genericDescription stands in when no collaborator could describe an image.
// The search URL built from it is still actionable for a human.
const genericDescription = "online product photo"

const maxImageBytes = 10 << 20

type Handlers struct {
	analyzer  *analyzer.Analyzer
	describer ai.Describer
	searcher  ai.SimilaritySearcher
	logger    *slog.Logger
}

type HandlerOption func(*Handlers)

// WithDescriber installs the optional image describer. Without it the
// describe endpoint reports itself unconfigured.
func WithDescriber(d ai.Describer) HandlerOption {
	return func(h *Handlers) { h.describer = d }
}

// WithSimilaritySearcher installs the optional similarity index client.
func WithSimilaritySearcher(s ai.SimilaritySearcher) HandlerOption {
	return func(h *Handlers) { h.searcher = s }
}

func NewHandlers(a *analyzer.Analyzer, logger *slog.Logger, opts ...HandlerOption) *Handlers {
	h := &Handlers{
		analyzer: a,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AnalyzeRequest asks for a full extraction run on one page URL.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// Analyze handles page analysis requests.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		h.respondError(w, http.StatusBadRequest, "url must be absolute")
		return
	}

	result, err := h.analyzer.AnalyzeURL(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, analyzer.ErrPageUnreachable) {
			h.respondError(w, http.StatusBadGateway, "page unreachable")
			return
		}
		h.logger.Error("analysis failed", "url", req.URL, "error", err)
		h.respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// SupplierRequest asks for a supplier lookup by display name.
type SupplierRequest struct {
	Name string `json:"name"`
}

// Supplier handles supplier lookups by name.
func (h *Handlers) Supplier(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	result, err := h.analyzer.AnalyzeSupplierByName(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, analyzer.ErrPageUnreachable) {
			h.respondError(w, http.StatusBadGateway, "supplier search unreachable")
			return
		}
		h.logger.Error("supplier lookup failed", "name", req.Name, "error", err)
		h.respondError(w, http.StatusInternalServerError, "supplier lookup failed")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Track classifies a tracking code and returns tracking links. An optional
// category query parameter forces the classification.
func (h *Handlers) Track(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		h.respondError(w, http.StatusBadRequest, "tracking code is required")
		return
	}

	query := models.TrackingQuery{
		Code:           code,
		ForcedCategory: models.Category(r.URL.Query().Get("category")),
	}
	h.respondJSON(w, http.StatusOK, tracking.Track(query))
}

// SearchURL builds an outbound shop search URL from shop, country and q
// query parameters.
func (h *Handlers) SearchURL(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		h.respondError(w, http.StatusBadRequest, "q is required")
		return
	}

	shop := r.URL.Query().Get("shop")
	country := r.URL.Query().Get("country")

	h.respondJSON(w, http.StatusOK, map[string]any{
		"url":        shops.BuildSearchURL(shop, country, q),
		"shop_known": shops.Known(shop),
	})
}

// DescribeResponse carries the image-derived search query and the shop URL
// built from it.
type DescribeResponse struct {
	Description string `json:"description"`
	Shop        string `json:"shop,omitempty"`
	Country     string `json:"country,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source"`
}

// Describe turns an uploaded product image into a search query via the
// configured describer and answers with a shop search URL for it. A
// describer miss degrades to a generic query, never an error.
func (h *Handlers) Describe(w http.ResponseWriter, r *http.Request) {
	if h.describer == nil {
		h.respondError(w, http.StatusServiceUnavailable, "image description not configured")
		return
	}

	image, err := readImage(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "image is required")
		return
	}

	shop := strings.TrimSpace(r.URL.Query().Get("shop"))
	country := strings.TrimSpace(r.URL.Query().Get("country"))

	description, err := h.describer.Describe(r.Context(), image)
	source := "ai"
	if err != nil || description == "" {
		if err != nil && !errors.Is(err, ai.ErrNoDescription) {
			h.logger.Warn("image description failed", "error", err)
		}
		description = genericDescription
		source = "fallback"
	}

	h.respondJSON(w, http.StatusOK, DescribeResponse{
		Description: description,
		Shop:        shop,
		Country:     country,
		URL:         shops.BuildSearchURL(shop, country, description),
		Source:      source,
	})
}

// Similar looks an uploaded image up in the similarity index. The index
// being empty is a normal zero-match answer; the index being unreachable is
// a service fault.
func (h *Handlers) Similar(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		h.respondError(w, http.StatusServiceUnavailable, "similarity search not configured")
		return
	}

	image, err := readImage(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "image is required")
		return
	}

	k := 5
	if raw := r.URL.Query().Get("k"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			k = n
		}
	}

	matches, err := h.searcher.Search(r.Context(), image, k)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrIndexEmpty):
			h.respondJSON(w, http.StatusOK, map[string]any{"matches": []ai.Match{}})
		case errors.Is(err, ai.ErrIndexUnavailable):
			h.respondError(w, http.StatusServiceUnavailable, "similarity index unavailable")
		default:
			h.logger.Error("similarity search failed", "error", err)
			h.respondError(w, http.StatusInternalServerError, "similarity search failed")
		}
		return
	}
	if matches == nil {
		matches = []ai.Match{}
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

// readImage accepts the upload either as a multipart "file" field or as the
// raw request body.
func readImage(r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return readAllImage(file)
	}
	return readAllImage(r.Body)
}

func readAllImage(src io.Reader) ([]byte, error) {
	image, err := io.ReadAll(io.LimitReader(src, maxImageBytes))
	if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, errors.New("empty image")
	}
	return image, nil
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper methods
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
