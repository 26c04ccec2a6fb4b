package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/closetly/product-scraper/internal/models"
)

// extractMetaTags fills fields still unset from Open Graph, Twitter
// card and product meta tags. Each field has its own ordered fallback
// chain; the first tag present wins.
func (p *ProductParser) extractMetaTags(doc *goquery.Document, data *models.ProductData) {
	if data.Name == nil {
		name := metaContent(doc,
			`meta[property="og:title"]`,
			`meta[name="og:title"]`,
			`meta[property="twitter:title"]`,
		)
		if name == "" {
			name = strings.TrimSpace(doc.Find("title").First().Text())
		}
		setString(&data.Name, name)
	}

	if data.ImageURL == nil {
		image := metaContent(doc,
			`meta[property="og:image"]`,
			`meta[name="og:image"]`,
			`meta[property="twitter:image"]`,
		)
		setString(&data.ImageURL, image)
	}

	if data.Price == nil {
		amount := metaContent(doc,
			`meta[property="og:price:amount"]`,
			`meta[property="product:price:amount"]`,
		)
		if amount != "" {
			if price, err := strconv.ParseFloat(amount, 64); err == nil {
				setFloat(&data.Price, price)
			}
		}

		if data.Currency == "" {
			data.Currency = metaContent(doc,
				`meta[property="og:price:currency"]`,
				`meta[property="product:price:currency"]`,
			)
		}
	}

	if data.Brand == nil {
		brand := metaContent(doc,
			`meta[property="og:brand"]`,
			`meta[property="product:brand"]`,
			`meta[name="brand"]`,
		)
		setString(&data.Brand, brand)
	}
}

// extractSiteNameBrand is the last-chance brand source: the site name.
// It runs after categorization and cleanup, still honoring any brand a
// real source produced.
func (p *ProductParser) extractSiteNameBrand(doc *goquery.Document, data *models.ProductData) {
	if data.Brand != nil {
		return
	}
	brand := metaContent(doc,
		`meta[property="og:site_name"]`,
		`meta[property="site_name"]`,
		`meta[property="product:site_name"]`,
		`meta[name="site_name"]`,
	)
	setString(&data.Brand, brand)
}

// metaContent returns the content attribute of the first selector that
// matches an element carrying a non-empty value.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if content, exists := doc.Find(selector).First().Attr("content"); exists {
			content = strings.TrimSpace(content)
			if content != "" {
				return content
			}
		}
	}
	return ""
}
