package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/closetly/product-scraper/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProductNotFound = errors.New("product not found")

// InsertProduct stores a new product, assigning identity and
// timestamps. The extraction pipeline never writes here; this is the
// caller-side persistence of a confirmed record.
func (db *DB) InsertProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO products (id, url, name, brand, price, sale_price, currency, image_url, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := db.pool.QueryRow(ctx, query,
		p.ID, p.URL, p.Name, p.Brand, p.Price, p.SalePrice, p.Currency, p.ImageURL, p.Category,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// UpdateProduct overwrites the editable fields of an existing product.
func (db *DB) UpdateProduct(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products SET
			name = $2,
			brand = $3,
			price = $4,
			sale_price = $5,
			currency = $6,
			image_url = $7,
			category = $8,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := db.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Brand, p.Price, p.SalePrice, p.Currency, p.ImageURL, p.Category,
	).Scan(&p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// ListProducts returns all stored products, newest first.
func (db *DB) ListProducts(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT id, url, name, brand, price, sale_price, currency, image_url, category, created_at, updated_at
		FROM products
		ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(
			&p.ID, &p.URL, &p.Name, &p.Brand, &p.Price, &p.SalePrice,
			&p.Currency, &p.ImageURL, &p.Category, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}

// GetProduct fetches one product by id.
func (db *DB) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT id, url, name, brand, price, sale_price, currency, image_url, category, created_at, updated_at
		FROM products
		WHERE id = $1`

	p := &models.Product{}
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.URL, &p.Name, &p.Brand, &p.Price, &p.SalePrice,
		&p.Currency, &p.ImageURL, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// DeleteProduct removes one product by id.
func (db *DB) DeleteProduct(ctx context.Context, id string) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}
