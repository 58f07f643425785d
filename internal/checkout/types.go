package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/technest-labs/storefront-backend/pkg/errors"
)

// ShippingInput is the address payload captured at submission. It is
// snapshotted onto the order verbatim.
type ShippingInput struct {
	FullName     string  `json:"full_name"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postal_code"`
	Country      string  `json:"country"`
	Phone        string  `json:"phone"`
	IsDefault    bool    `json:"is_default"`
}

// SubmitInput is the full checkout submission.
type SubmitInput struct {
	Shipping      ShippingInput `json:"shipping"`
	PaymentMethod *string       `json:"payment_method,omitempty"`
	IPAddress     *string       `json:"-"`
}

// Validate enforces the required submission fields, reporting the first
// missing one by name.
func (in SubmitInput) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"full_name", in.Shipping.FullName},
		{"address_line1", in.Shipping.AddressLine1},
		{"city", in.Shipping.City},
		{"state", in.Shipping.State},
		{"postal_code", in.Shipping.PostalCode},
		{"country", in.Shipping.Country},
		{"phone", in.Shipping.Phone},
	}
	for _, entry := range required {
		if strings.TrimSpace(entry.value) == "" {
			return pkgerrors.MissingField(entry.field)
		}
	}
	if in.PaymentMethod == nil || strings.TrimSpace(*in.PaymentMethod) == "" {
		return pkgerrors.MissingField("payment_method")
	}
	return nil
}

// OrderConfirmationDTO is returned after a successful submission.
type OrderConfirmationDTO struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	Payment     string    `json:"payment_status"`
	Quote       Quote     `json:"totals"`
	PlacedAt    time.Time `json:"placed_at"`
}
