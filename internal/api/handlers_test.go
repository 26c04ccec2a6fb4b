package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/closetly/product-scraper/internal/database"
	"github.com/closetly/product-scraper/internal/models"
	"github.com/closetly/product-scraper/internal/scraper"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	data *models.ProductData
	err  error
}

func (f *fakeScraper) ScrapeProduct(ctx context.Context, url string) (*models.ProductData, error) {
	return f.data, f.err
}

type fakeStore struct {
	products map[string]*models.Product
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*models.Product)}
}

func (f *fakeStore) InsertProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return database.ErrProductNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, database.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return database.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func newTestServer(t *testing.T, sc ProductScraper, store ProductStore) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewHandlers(sc, store, logger).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func TestScrapeProduct(t *testing.T) {
	name := "Blue Shirt"
	price := 45.00
	extracted := &models.ProductData{
		Name:     &name,
		Price:    &price,
		Currency: "EUR",
		Category: models.CategoryShirts,
	}

	tests := []struct {
		name       string
		scraper    *fakeScraper
		body       interface{}
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name:       "successful extraction",
			scraper:    &fakeScraper{data: extracted},
			body:       ScrapeRequest{URL: "https://shop.example/p/1"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got models.ProductData
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, extracted, &got)
			},
		},
		{
			name:       "missing URL",
			scraper:    &fakeScraper{},
			body:       ScrapeRequest{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid URL",
			scraper:    &fakeScraper{err: scraper.ErrInvalidURL},
			body:       ScrapeRequest{URL: "not a url"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "blocked site carries the manual entry flag",
			scraper:    &fakeScraper{err: scraper.ErrBlocked},
			body:       ScrapeRequest{URL: "https://fortress.example/p/1"},
			wantStatus: http.StatusForbidden,
			check: func(t *testing.T, body []byte) {
				var got ScrapeErrorResponse
				require.NoError(t, json.Unmarshal(body, &got))
				assert.True(t, got.Blocked)
				assert.Contains(t, got.Error, "manually entering")
			},
		},
		{
			name:       "upstream status is passed through",
			scraper:    &fakeScraper{err: &scraper.FetchError{StatusCode: http.StatusServiceUnavailable}},
			body:       ScrapeRequest{URL: "https://down.example/p/1"},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "network failure maps to bad gateway",
			scraper:    &fakeScraper{err: &scraper.FetchError{Err: context.DeadlineExceeded}},
			body:       ScrapeRequest{URL: "https://slow.example/p/1"},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.scraper, newFakeStore())

			resp := postJSON(t, srv.URL+"/scrape", tt.body)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.check != nil {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				tt.check(t, body)
			}
		})
	}
}

func TestProductCRUD(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(t, &fakeScraper{}, store)

	brand := "Knitwell"
	price := 89.0
	product := models.Product{
		URL:      "https://shop.example/p/1",
		Name:     "Wool Sweater",
		Brand:    &brand,
		Price:    &price,
		Currency: "GBP",
		Category: models.CategoryOuterwear,
	}

	// Create
	resp := postJSON(t, srv.URL+"/products", product)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Wool Sweater", created.Name)

	// Get
	resp, err := http.Get(srv.URL + "/products/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// List
	resp, err = http.Get(srv.URL + "/products")
	require.NoError(t, err)
	var listed []*models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()
	assert.Len(t, listed, 1)

	// Delete
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/products/"+created.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Gone
	resp, err = http.Get(srv.URL + "/products/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateProductValidation(t *testing.T) {
	srv := newTestServer(t, &fakeScraper{}, newFakeStore())

	resp := postJSON(t, srv.URL+"/products", models.Product{URL: "https://shop.example/p/1"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
