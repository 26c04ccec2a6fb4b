package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/closetly/product-scraper/internal/cache"
	"github.com/closetly/product-scraper/internal/models"
	"github.com/closetly/product-scraper/internal/parser"
	"github.com/closetly/product-scraper/internal/ratelimit"
)

// Service runs the extraction pipeline for one URL at a time: validate,
// fetch, parse. Invocations share no mutable state, so concurrent calls
// are safe. Caching and outbound rate limiting sit around the pipeline
// without changing its semantics.
type Service struct {
	fetcher  *Fetcher
	parser   parser.Parser
	cache    cache.Cache
	limiter  *ratelimit.HostLimiter
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewService(fetcher *Fetcher, p parser.Parser, c cache.Cache, limiter *ratelimit.HostLimiter, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		parser:   p,
		cache:    c,
		limiter:  limiter,
		cacheTTL: cacheTTL,
		logger:   logger.With("component", "scraper"),
	}
}

// ScrapeProduct extracts a product record from the page at rawURL.
// Failures are ErrInvalidURL, ErrBlocked or a FetchError; everything
// past a successful fetch degrades per-field instead of failing.
func (s *Service) ScrapeProduct(ctx context.Context, rawURL string) (*models.ProductData, error) {
	pageURL, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}
	key := pageURL.String()

	if s.cache != nil {
		if data, err := s.cache.GetProduct(ctx, key); err == nil {
			s.logger.Info("serving cached extraction", "url", key)
			return data, nil
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, pageURL.Host); err != nil {
			return nil, err
		}
	}

	html, err := s.fetcher.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	data, err := s.parser.ParseProductPage(html, pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse product page: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache extraction", "url", key, "error", err)
		}
	}

	s.logger.Info("extracted product data",
		"url", key,
		"hasName", data.Name != nil,
		"hasBrand", data.Brand != nil,
		"hasPrice", data.Price != nil,
		"hasImage", data.ImageURL != nil,
		"category", data.Category,
	)

	return data, nil
}

// validateURL enforces an absolute http(s) URL with a host.
func validateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}
