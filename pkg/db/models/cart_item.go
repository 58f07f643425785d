package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a mutable per-user cart line. Quantity never drops below 1 in
// storage: mutations that would take it lower delete the row instead. The
// line subtotal is always derived, never stored. ProductName and
// PriceAtAdded are captured at add time so the line stays priceable and
// nameable if the catalog row disappears before checkout.
type CartItem struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex:cart_items_user_product_key"`
	ProductID    uuid.UUID        `gorm:"column:product_id;type:uuid;not null;uniqueIndex:cart_items_user_product_key"`
	Quantity     int              `gorm:"column:quantity;not null;default:1"`
	ProductName  string           `gorm:"column:product_name;not null;default:''"`
	PriceAtAdded *decimal.Decimal `gorm:"column:price_at_added;type:numeric(10,2)"`
	Product      *Product         `gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// DisplayName resolves the live catalog name, falling back to the name
// captured at add time.
func (c CartItem) DisplayName() string {
	if c.Product != nil {
		return c.Product.Name
	}
	return c.ProductName
}

// EffectiveUnitPrice resolves the price captured at add time, falling back to
// the live catalog price. The second return is false when neither exists
// (product deleted and no cached price).
func (c CartItem) EffectiveUnitPrice() (decimal.Decimal, bool) {
	if c.PriceAtAdded != nil {
		return *c.PriceAtAdded, true
	}
	if c.Product != nil {
		return c.Product.Price, true
	}
	return decimal.Zero, false
}
