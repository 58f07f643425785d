package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/technest-labs/storefront-backend/pkg/enums"
)

// Order is the immutable financial record produced by checkout. Application
// logic never updates its monetary fields after creation; the back office
// may only advance status and payment_status.
//
// Invariant: GrandTotal == Subtotal + TaxAmount + ShippingCost - DiscountAmount,
// over the stored 2-fraction-digit values.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	OrderNumber     string              `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	Subtotal        decimal.Decimal     `gorm:"column:subtotal;type:numeric(10,2);not null"`
	TaxAmount       decimal.Decimal     `gorm:"column:tax_amount;type:numeric(10,2);not null;default:0"`
	ShippingCost    decimal.Decimal     `gorm:"column:shipping_cost;type:numeric(10,2);not null;default:0"`
	DiscountAmount  decimal.Decimal     `gorm:"column:discount_amount;type:numeric(10,2);not null;default:0"`
	GrandTotal      decimal.Decimal     `gorm:"column:grand_total;type:numeric(10,2);not null"`
	PaymentMethod   *string             `gorm:"column:payment_method"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	TransactionID   *string             `gorm:"column:transaction_id"`
	IPAddress       *string             `gorm:"column:ip_address"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress *ShippingAddress    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
