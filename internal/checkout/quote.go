package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/technest-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/technest-labs/storefront-backend/pkg/errors"
	"github.com/technest-labs/storefront-backend/pkg/money"
)

var (
	// TaxRate is applied to the cart subtotal.
	TaxRate = decimal.NewFromFloat(0.18)
	// FlatShippingCost is charged on every non-empty cart.
	FlatShippingCost = decimal.NewFromInt(50)
)

// QuoteLine is one priced cart line inside a quote.
type QuoteLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	ImageURL  *string         `json:"image_url,omitempty"`
}

// Quote is the derived pricing for a cart. Every amount carries exactly two
// fraction digits, and GrandTotal is the sum of the other stored components
// so persisted rows satisfy the total equation without re-rounding.
type Quote struct {
	Lines      []QuoteLine     `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	Discount   decimal.Decimal `json:"discount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// BuildQuote derives the full pricing for the given cart rows. Both the
// preview endpoint and order submission call this, so a preview always
// matches the order that a subsequent submit would write.
func BuildQuote(items []models.CartItem) (Quote, error) {
	quote := Quote{
		Lines:    make([]QuoteLine, 0, len(items)),
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
	}

	for _, item := range items {
		unit, ok := item.EffectiveUnitPrice()
		if !ok {
			return Quote{}, pkgerrors.New(pkgerrors.CodeOrderCreation, "cart line has no resolvable price").
				WithDetails(map[string]string{"product_id": item.ProductID.String()})
		}
		unit = money.Round2(unit)

		line := QuoteLine{
			ProductID: item.ProductID,
			Name:      item.DisplayName(),
			UnitPrice: unit,
			Quantity:  item.Quantity,
			LineTotal: money.LineTotal(unit, item.Quantity),
		}
		if item.Product != nil {
			line.ImageURL = item.Product.ImageURL
		}
		if line.Name == "" {
			return Quote{}, pkgerrors.New(pkgerrors.CodeOrderCreation, "cart line has no resolvable product name").
				WithDetails(map[string]string{"product_id": item.ProductID.String()})
		}

		quote.Lines = append(quote.Lines, line)
		quote.Subtotal = quote.Subtotal.Add(line.LineTotal)
	}

	quote.Subtotal = money.Round2(quote.Subtotal)
	quote.Tax = money.Round2(quote.Subtotal.Mul(TaxRate))
	if quote.Subtotal.Sign() > 0 {
		quote.Shipping = money.Round2(FlatShippingCost)
	} else {
		quote.Shipping = decimal.Zero
	}
	quote.GrandTotal = quote.Subtotal.Add(quote.Tax).Add(quote.Shipping).Sub(quote.Discount)

	return quote, nil
}
