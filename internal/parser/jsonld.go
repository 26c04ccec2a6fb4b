package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/closetly/product-scraper/internal/models"
)

// extractStructuredData scans every JSON-LD script block for Product
// items. Blocks are parsed independently; a malformed block is skipped
// without affecting the others. For each field the first Product item
// exposing a usable value wins.
func (p *ProductParser) extractStructuredData(doc *goquery.Document, data *models.ProductData) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var parsed interface{}
		if err := json.Unmarshal([]byte(s.Text()), &parsed); err != nil {
			// Skip invalid JSON-LD
			return
		}

		items, ok := parsed.([]interface{})
		if !ok {
			items = []interface{}{parsed}
		}

		for _, raw := range items {
			item, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			if itemType, _ := item["@type"].(string); itemType != "Product" {
				continue
			}

			if name, ok := item["name"].(string); ok {
				setString(&data.Name, name)
			}

			if brand := stringOrField(item["brand"], "name"); brand != "" {
				setString(&data.Brand, brand)
			}

			if data.Price == nil && item["offers"] != nil {
				p.extractOffer(firstItem(item["offers"]), data)
			}

			if image := stringOrField(firstItem(item["image"]), "url"); image != "" {
				setString(&data.ImageURL, image)
			}
		}
	})
}

// extractOffer reads price and currency from a single schema.org Offer.
// A priceSpecification list holding several distinct prices marks a
// sale: the maximum is the original price, the minimum the sale price.
func (p *ProductParser) extractOffer(raw interface{}, data *models.ProductData) {
	offer, ok := raw.(map[string]interface{})
	if !ok {
		return
	}

	if price, ok := asFloat(offer["price"]); ok {
		setFloat(&data.Price, price)
	}
	if currency, ok := offer["priceCurrency"].(string); ok && currency != "" {
		data.Currency = currency
	}

	specs, ok := offer["priceSpecification"]
	if !ok {
		return
	}
	specList, ok := specs.([]interface{})
	if !ok {
		specList = []interface{}{specs}
	}

	var prices []float64
	for _, rawSpec := range specList {
		spec, ok := rawSpec.(map[string]interface{})
		if !ok {
			continue
		}
		if price, ok := asFloat(spec["price"]); ok {
			prices = append(prices, price)
		}
	}
	if len(prices) == 0 {
		return
	}

	highest, lowest := prices[0], prices[0]
	for _, price := range prices[1:] {
		if price > highest {
			highest = price
		}
		if price < lowest {
			lowest = price
		}
	}

	setFloat(&data.Price, highest)

	// A single uniform price is not a sale.
	if lowest != highest {
		data.SalePrice = &lowest
	}

	if data.Currency == "" {
		for _, rawSpec := range specList {
			spec, ok := rawSpec.(map[string]interface{})
			if !ok {
				continue
			}
			if currency, ok := spec["priceCurrency"].(string); ok && currency != "" {
				data.Currency = currency
				break
			}
		}
	}
}

// firstItem coerces a single-or-list JSON value to its first element.
func firstItem(v interface{}) interface{} {
	if list, ok := v.([]interface{}); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return v
}

// stringOrField coerces a string-or-object JSON value to a string,
// reading the named field when the value is an object.
func stringOrField(v interface{}, field string) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		if s, ok := t[field].(string); ok {
			return s
		}
	}
	return ""
}

// asFloat accepts the two shapes JSON-LD prices show up in: a JSON
// number or a numeric string.
func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
