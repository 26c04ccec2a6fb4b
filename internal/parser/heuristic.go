package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/closetly/product-scraper/internal/models"
)

// Selectors that commonly carry a visible price, tried in order.
var priceSelectors = []string{
	".price",
	`[class*="price"]`,
	`[id*="price"]`,
	"[data-price]",
	`span[itemprop="price"]`,
}

// Digits with optional comma grouping and at most one decimal point.
var pricePattern = regexp.MustCompile(`[\d,]+\.?\d*`)

// extractHeuristicPrice is the last-resort price source: scan common
// price-bearing selectors and regex the first numeric token out of the
// element text. A selector whose text does not parse is skipped, not
// accepted.
func (p *ProductParser) extractHeuristicPrice(doc *goquery.Document, data *models.ProductData) {
	if data.Price != nil {
		return
	}

	for _, selector := range priceSelectors {
		priceText := doc.Find(selector).First().Text()
		match := pricePattern.FindString(priceText)
		if match == "" {
			continue
		}

		cleaned := strings.ReplaceAll(match, ",", "")
		price, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}

		data.Price = &price
		return
	}
}
