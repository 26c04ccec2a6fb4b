// Package parser turns fetched product page HTML into a normalized
// ProductData record. Sources are tried in priority order: JSON-LD
// structured data, then Open Graph / Twitter / product meta tags, then
// heuristic price selectors. A lower-priority source never overwrites a
// field a higher-priority source already filled.
package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/closetly/product-scraper/internal/models"
)

type Parser interface {
	ParseProductPage(html string, pageURL *url.URL) (*models.ProductData, error)
}

type ProductParser struct {
	categoryPatterns []categoryPattern
}

func NewProductParser() *ProductParser {
	return &ProductParser{
		categoryPatterns: defaultCategoryPatterns(),
	}
}

// ParseProductPage runs the full extraction pipeline over one document.
// pageURL is the already validated source URL, used for categorization
// and for resolving relative image URLs.
func (p *ProductParser) ParseProductPage(html string, pageURL *url.URL) (*models.ProductData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	data := &models.ProductData{}

	p.extractStructuredData(doc, data)
	p.extractMetaTags(doc, data)
	p.extractHeuristicPrice(doc, data)
	p.categorize(data, pageURL)
	p.cleanName(data)
	p.resolveImageURL(data, pageURL)
	p.extractSiteNameBrand(doc, data)
	p.applyDefaults(data)

	return data, nil
}

// applyDefaults closes out the record: currency falls back to USD and a
// sale price that is not a genuine discount is dropped.
func (p *ProductParser) applyDefaults(data *models.ProductData) {
	if data.Currency == "" {
		data.Currency = "USD"
	}

	if data.SalePrice != nil {
		if data.Price == nil || *data.SalePrice >= *data.Price {
			data.SalePrice = nil
		}
	}
}

func setString(dst **string, value string) {
	value = strings.TrimSpace(value)
	if *dst == nil && value != "" {
		*dst = &value
	}
}

func setFloat(dst **float64, value float64) {
	if *dst == nil {
		*dst = &value
	}
}
