package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/technest-labs/storefront-backend/pkg/db/models"
	"github.com/technest-labs/storefront-backend/pkg/money"
)

// CartItemDTO is one cart line with its derived subtotal.
type CartItemDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	InStock   bool            `json:"in_stock"`
	ImageURL  *string         `json:"image_url,omitempty"`
}

// CartDTO is the whole cart view. Subtotal is always recomputed from the
// lines, never stored.
type CartDTO struct {
	Items    []CartItemDTO   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Count    int             `json:"count"`
}

// AddItemInput is the payload for adding a product to the cart.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1,max=99"`
}

// UpdateQuantityInput adjusts a cart line by a signed delta.
type UpdateQuantityInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Delta     int       `json:"delta" validate:"required"`
}

func toItemDTO(item models.CartItem) CartItemDTO {
	dto := CartItemDTO{
		ProductID: item.ProductID,
		Name:      item.DisplayName(),
		Quantity:  item.Quantity,
	}
	if unit, ok := item.EffectiveUnitPrice(); ok {
		dto.UnitPrice = unit
		dto.LineTotal = money.LineTotal(unit, item.Quantity)
	}
	if item.Product != nil {
		dto.InStock = item.Product.InStock()
		dto.ImageURL = item.Product.ImageURL
	}
	return dto
}
