package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/technest-labs/storefront-backend/pkg/db/models"
	"github.com/technest-labs/storefront-backend/pkg/enums"
)

// ProductDTO is the catalog view returned to clients.
type ProductDTO struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Price       decimal.Decimal       `json:"price"`
	Stock       int                   `json:"stock"`
	InStock     bool                  `json:"in_stock"`
	Description string                `json:"description"`
	Category    enums.ProductCategory `json:"category"`
	ImageURL    *string               `json:"image_url,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ProductPageDTO is one page of catalog results with the next cursor.
type ProductPageDTO struct {
	Items      []ProductDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// CreateProductInput is the admin payload for adding a catalog entry.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"min=0"`
	Description string          `json:"description" validate:"max=5000"`
	Category    string          `json:"category" validate:"required"`
	ImageURL    *string         `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateProductInput carries partial catalog edits. Nil fields are untouched.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    *string          `json:"category,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty" validate:"omitempty,url"`
}

func toDTO(product models.Product) ProductDTO {
	return ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Stock:       product.Stock,
		InStock:     product.InStock(),
		Description: product.Description,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
	}
}
