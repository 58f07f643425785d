package wishlist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/technest-labs/storefront-backend/pkg/db/models"
)

// WishlistItemDTO is one saved product as shown to the customer.
type WishlistItemDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	InStock   bool            `json:"in_stock"`
	ImageURL  *string         `json:"image_url,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// WishlistPageDTO is one page of wishlist rows with the next cursor.
type WishlistPageDTO struct {
	Items      []WishlistItemDTO `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// ToggleResultDTO reports the resulting membership after a toggle.
type ToggleResultDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Added     bool      `json:"added"`
}

func toItemDTO(item models.WishlistItem) WishlistItemDTO {
	dto := WishlistItemDTO{
		ProductID: item.ProductID,
		AddedAt:   item.CreatedAt,
	}
	if item.Product != nil {
		dto.Name = item.Product.Name
		dto.Price = item.Product.Price
		dto.InStock = item.Product.InStock()
		dto.ImageURL = item.Product.ImageURL
	}
	return dto
}
