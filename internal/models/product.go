package models

import (
	"time"
)

// Product categories assignable by the extraction pipeline.
const (
	CategoryShirts      = "shirts"
	CategoryPants       = "pants"
	CategoryShoes       = "shoes"
	CategoryOuterwear   = "outerwear"
	CategoryAccessories = "accessories"
	CategoryOther       = "other"
)

// ProductData is the result of one extraction pass over a product page.
// Pointer fields stay nil when no source on the page yielded a value;
// Currency and Category are always populated by the time the pipeline
// returns.
type ProductData struct {
	Name      *string  `json:"name"`
	Brand     *string  `json:"brand"`
	Price     *float64 `json:"price"`
	SalePrice *float64 `json:"salePrice"`
	Currency  string   `json:"currency"`
	ImageURL  *string  `json:"image_url"`
	Category  string   `json:"category"`
}

// Product is a persisted product entry in a user's collection. Identity
// and timestamps are assigned by the store, not by the extraction
// pipeline.
type Product struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	Brand     *string   `json:"brand"`
	Price     *float64  `json:"price"`
	SalePrice *float64  `json:"sale_price"`
	Currency  string    `json:"currency"`
	ImageURL  *string   `json:"image_url"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate reports the problems that make a product unfit for storage.
func (p *Product) Validate() []string {
	var errors []string

	if p.URL == "" {
		errors = append(errors, "URL is required")
	}

	if p.Name == "" {
		errors = append(errors, "Name is required")
	}

	if p.Price != nil && *p.Price < 0 {
		errors = append(errors, "Price must not be negative")
	}

	if p.SalePrice != nil {
		if p.Price == nil {
			errors = append(errors, "Sale price requires a price")
		} else if *p.SalePrice >= *p.Price {
			errors = append(errors, "Sale price must be lower than price")
		}
	}

	return errors
}
