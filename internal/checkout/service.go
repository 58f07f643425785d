package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/technest-labs/storefront-backend/internal/cart"
	"github.com/technest-labs/storefront-backend/internal/orders"
	"github.com/technest-labs/storefront-backend/pkg/db"
	"github.com/technest-labs/storefront-backend/pkg/db/models"
	"github.com/technest-labs/storefront-backend/pkg/enums"
	pkgerrors "github.com/technest-labs/storefront-backend/pkg/errors"
	"github.com/technest-labs/storefront-backend/pkg/logger"
	"github.com/technest-labs/storefront-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service converts a cart into an order.
type Service interface {
	Preview(ctx context.Context, userID uuid.UUID) (Quote, error)
	Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*OrderConfirmationDTO, error)
}

type service struct {
	tx         txRunner
	cartRepo   cart.Repository
	ordersRepo orders.Repository
	logg       *logger.Logger
	metrics    *metrics.CheckoutMetrics
	now        func() time.Time
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartRepo cart.Repository,
	ordersRepo orders.Repository,
	logg *logger.Logger,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{
		tx:         tx,
		cartRepo:   cartRepo,
		ordersRepo: ordersRepo,
		logg:       logg,
		metrics:    checkoutMetrics,
		now:        time.Now,
	}, nil
}

// Preview derives the totals the cart would produce if submitted now. It
// reads without locking and writes nothing.
func (s *service) Preview(ctx context.Context, userID uuid.UUID) (Quote, error) {
	if userID == uuid.Nil {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return Quote{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}
	if len(items) == 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "your cart is empty")
	}
	return BuildQuote(items)
}

// Submit atomically converts the cart into an order: price derivation,
// order rows, address snapshot and cart clearing all commit or roll back
// together.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*OrderConfirmationDTO, error) {
	start := s.now()

	confirmation, err := s.submit(ctx, userID, input)
	if err != nil {
		s.metrics.ObserveFailure(failureReason(err), s.now().Sub(start))
		return nil, err
	}

	s.metrics.ObserveSuccess(s.now().Sub(start))
	if s.logg != nil {
		logCtx := s.logg.WithOrderNumber(ctx, confirmation.OrderNumber)
		logCtx = s.logg.WithFields(logCtx, map[string]any{
			"user_id":     userID.String(),
			"grand_total": confirmation.Quote.GrandTotal.String(),
			"line_count":  len(confirmation.Quote.Lines),
		})
		s.logg.Info(logCtx, "checkout.order_placed")
	}
	return confirmation, nil
}

func (s *service) submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*OrderConfirmationDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var confirmation *OrderConfirmationDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		items, err := cartRepo.ListItemsForUpdate(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeOrderCreation, err, "lock cart")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "your cart is empty")
		}

		quote, err := BuildQuote(items)
		if err != nil {
			return err
		}

		placedAt := s.now().UTC()
		order := buildOrder(userID, OrderNumber(placedAt, userID), quote, input)

		created, err := ordersRepo.Create(ctx, order)
		if err != nil {
			if db.IsUniqueViolation(err, "orders_order_number_key") {
				return pkgerrors.Wrap(pkgerrors.CodeOrderCreation, err, "order number collision")
			}
			return pkgerrors.Wrap(pkgerrors.CodeOrderCreation, err, "persist order")
		}

		if err := cartRepo.Clear(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeOrderCreation, err, "clear cart")
		}

		confirmation = &OrderConfirmationDTO{
			OrderID:     created.ID,
			OrderNumber: created.OrderNumber,
			Status:      string(created.Status),
			Payment:     string(created.PaymentStatus),
			Quote:       quote,
			PlacedAt:    placedAt,
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeOrderCreation, err, "checkout transaction")
	}
	return confirmation, nil
}

func buildOrder(userID uuid.UUID, orderNumber string, quote Quote, input SubmitInput) *models.Order {
	order := &models.Order{
		ID:             uuid.New(),
		UserID:         userID,
		OrderNumber:    orderNumber,
		Status:         enums.OrderStatusPending,
		Subtotal:       quote.Subtotal,
		TaxAmount:      quote.Tax,
		ShippingCost:   quote.Shipping,
		DiscountAmount: quote.Discount,
		GrandTotal:     quote.GrandTotal,
		PaymentMethod:  input.PaymentMethod,
		PaymentStatus:  enums.PaymentStatusPending,
		IPAddress:      input.IPAddress,
	}

	order.Items = make([]models.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		productID := line.ProductID
		order.Items = append(order.Items, models.OrderItem{
			ID:          uuid.New(),
			ProductID:   &productID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.LineTotal,
			ImageURL:    line.ImageURL,
		})
	}

	order.ShippingAddress = &models.ShippingAddress{
		ID:           uuid.New(),
		UserID:       userID,
		FullName:     strings.TrimSpace(input.Shipping.FullName),
		AddressLine1: strings.TrimSpace(input.Shipping.AddressLine1),
		AddressLine2: input.Shipping.AddressLine2,
		City:         strings.TrimSpace(input.Shipping.City),
		State:        strings.TrimSpace(input.Shipping.State),
		PostalCode:   strings.TrimSpace(input.Shipping.PostalCode),
		Country:      strings.TrimSpace(input.Shipping.Country),
		Phone:        strings.TrimSpace(input.Shipping.Phone),
		IsDefault:    input.Shipping.IsDefault,
	}

	return order
}

// OrderNumber builds the human-readable order identifier. The orders table
// enforces its uniqueness; a same-second resubmission surfaces as a unique
// violation and fails the transaction.
func OrderNumber(placedAt time.Time, userID uuid.UUID) string {
	return fmt.Sprintf("ORD-%s-%s", placedAt.UTC().Format("20060102150405"), userID.String())
}

func failureReason(err error) string {
	switch {
	case pkgerrors.HasCode(err, pkgerrors.CodeEmptyCart):
		return "empty_cart"
	case pkgerrors.HasCode(err, pkgerrors.CodeValidation):
		return "validation"
	default:
		return "order_creation"
	}
}
