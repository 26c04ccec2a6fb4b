package parser

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/closetly/product-scraper/internal/models"
)

// Trailing " | Site Name" / " - Site Name" style suffixes.
var nameSuffixPattern = regexp.MustCompile(`\s*[|\-–]\s*.+$`)

// cleanName strips the site-name suffix sites append to page titles.
// Runs once, after every name source has been tried.
func (p *ProductParser) cleanName(data *models.ProductData) {
	if data.Name == nil {
		return
	}
	cleaned := strings.TrimSpace(nameSuffixPattern.ReplaceAllString(*data.Name, ""))
	data.Name = &cleaned
}

// resolveImageURL makes a relative image URL absolute against the
// source page's origin. If resolution fails the raw value is kept
// rather than discarded.
func (p *ProductParser) resolveImageURL(data *models.ProductData, pageURL *url.URL) {
	if data.ImageURL == nil || strings.HasPrefix(*data.ImageURL, "http") {
		return
	}

	ref, err := url.Parse(*data.ImageURL)
	if err != nil {
		return
	}

	origin := &url.URL{Scheme: pageURL.Scheme, Host: pageURL.Host}
	resolved := origin.ResolveReference(ref).String()
	data.ImageURL = &resolved
}
