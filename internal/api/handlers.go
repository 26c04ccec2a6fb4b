package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/closetly/product-scraper/internal/database"
	"github.com/closetly/product-scraper/internal/models"
	"github.com/closetly/product-scraper/internal/scraper"
)

// ProductScraper runs the extraction pipeline for one URL.
type ProductScraper interface {
	ScrapeProduct(ctx context.Context, url string) (*models.ProductData, error)
}

// ProductStore persists confirmed products on behalf of the frontend.
type ProductStore interface {
	InsertProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Handlers struct {
	scraper ProductScraper
	store   ProductStore
	logger  *slog.Logger
}

func NewHandlers(scraper ProductScraper, store ProductStore, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper: scraper,
		store:   store,
		logger:  logger,
	}
}

// Routes mounts all API endpoints.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/scrape", h.ScrapeProduct)
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/", h.ListProducts)
		r.Get("/{productID}", h.GetProduct)
		r.Put("/{productID}", h.UpdateProduct)
		r.Delete("/{productID}", h.DeleteProduct)
	})
	return r
}

// ScrapeRequest carries the one input of the extraction pipeline.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// ScrapeErrorResponse is the failure shape; Blocked tells the frontend
// to offer manual product entry.
type ScrapeErrorResponse struct {
	Error   string `json:"error"`
	Blocked bool   `json:"blocked,omitempty"`
}

// ScrapeProduct handles extraction requests. The extraction is
// advisory: every returned field stays editable by the user downstream.
func (h *Handlers) ScrapeProduct(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		h.respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	data, err := h.scraper.ScrapeProduct(r.Context(), req.URL)
	if err != nil {
		h.respondScrapeError(w, req.URL, err)
		return
	}

	h.respondJSON(w, http.StatusOK, data)
}

func (h *Handlers) respondScrapeError(w http.ResponseWriter, url string, err error) {
	switch {
	case errors.Is(err, scraper.ErrInvalidURL):
		h.respondError(w, http.StatusBadRequest, "Invalid URL format")

	case errors.Is(err, scraper.ErrBlocked):
		h.respondJSON(w, http.StatusForbidden, ScrapeErrorResponse{
			Error:   "Unable to access this website. The site may be blocking automated requests. Please try manually entering the product details.",
			Blocked: true,
		})

	default:
		var fetchErr *scraper.FetchError
		if errors.As(err, &fetchErr) {
			status := http.StatusBadGateway
			if fetchErr.StatusCode >= 400 {
				status = fetchErr.StatusCode
			}
			h.respondError(w, status, "Failed to fetch the product page")
			return
		}

		h.logger.Error("scrape failed", "url", url, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to scrape product information")
	}
}

// CreateProduct persists a product the user confirmed in the frontend.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if problems := p.Validate(); len(problems) > 0 {
		h.respondError(w, http.StatusBadRequest, strings.Join(problems, "; "))
		return
	}

	if err := h.store.InsertProduct(r.Context(), &p); err != nil {
		h.logger.Error("failed to insert product", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to save product")
		return
	}

	h.respondJSON(w, http.StatusCreated, &p)
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	if products == nil {
		products = []*models.Product{}
	}
	h.respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	p, err := h.store.GetProduct(r.Context(), id)
	if errors.Is(err, database.ErrProductNotFound) {
		h.respondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", "id", id, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	h.respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.ID = chi.URLParam(r, "productID")

	if problems := p.Validate(); len(problems) > 0 {
		h.respondError(w, http.StatusBadRequest, strings.Join(problems, "; "))
		return
	}

	err := h.store.UpdateProduct(r.Context(), &p)
	if errors.Is(err, database.ErrProductNotFound) {
		h.respondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to update product", "id", p.ID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	h.respondJSON(w, http.StatusOK, &p)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	err := h.store.DeleteProduct(r.Context(), id)
	if errors.Is(err, database.ErrProductNotFound) {
		h.respondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete product", "id", id, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
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
