package parser

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/closetly/product-scraper/internal/models"
)

type categoryPattern struct {
	category string
	pattern  *regexp.Regexp
}

// Keyword groups tested in order; the first match wins.
func defaultCategoryPatterns() []categoryPattern {
	return []categoryPattern{
		{models.CategoryShirts, regexp.MustCompile(`(?i)\b(shirt|tee|blouse|top|tank|polo)\b`)},
		{models.CategoryPants, regexp.MustCompile(`(?i)\b(pant|jean|trouser|short|skirt)\b`)},
		{models.CategoryShoes, regexp.MustCompile(`(?i)\b(shoe|sneaker|boot|sandal|heel|loafer)\b`)},
		{models.CategoryOuterwear, regexp.MustCompile(`(?i)\b(jacket|coat|hoodie|sweater|cardigan)\b`)},
		{models.CategoryAccessories, regexp.MustCompile(`(?i)\b(bag|hat|watch|belt|scarf|jewelry|accessory)\b`)},
	}
}

// categorize keyword-matches the page URL plus the extracted name
// against the fixed taxonomy. No match falls back to "other".
func (p *ProductParser) categorize(data *models.ProductData, pageURL *url.URL) {
	if data.Category != "" {
		return
	}

	name := ""
	if data.Name != nil {
		name = *data.Name
	}
	searchText := strings.ToLower(pageURL.String() + " " + name)

	for _, group := range p.categoryPatterns {
		if group.pattern.MatchString(searchText) {
			data.Category = group.category
			return
		}
	}

	data.Category = models.CategoryOther
}
