package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/technest-labs/storefront-backend/pkg/enums"
)

// Product represents the canonical catalog listing.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	Description string                `gorm:"column:description;not null"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null"`
	ImageURL    *string               `gorm:"column:image_url"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// InStock reports whether the listing has remaining inventory. Stock is
// informational: checkout never decrements or validates it.
func (p Product) InStock() bool {
	return p.Stock > 0
}
