package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingAddress is the address snapshot bound to a single order at
// checkout time.
type ShippingAddress struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	OrderID      uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	FullName     string    `gorm:"column:full_name;not null"`
	AddressLine1 string    `gorm:"column:address_line1;not null"`
	AddressLine2 *string   `gorm:"column:address_line2"`
	City         string    `gorm:"column:city;not null"`
	State        string    `gorm:"column:state;not null"`
	PostalCode   string    `gorm:"column:postal_code;not null"`
	Country      string    `gorm:"column:country;not null"`
	Phone        string    `gorm:"column:phone;not null"`
	IsDefault    bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
