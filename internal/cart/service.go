package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/technest-labs/storefront-backend/internal/products"
	"github.com/technest-labs/storefront-backend/pkg/db"
	"github.com/technest-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/technest-labs/storefront-backend/pkg/errors"
	"github.com/technest-labs/storefront-backend/pkg/money"
)

// Service exposes cart mutations and the derived cart view.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (CartDTO, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, input UpdateQuantityInput) (CartDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo        Repository
	productRepo products.Repository
}

// NewService builds a cart service.
func NewService(repo Repository, productRepo products.Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if productRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: repo, productRepo: productRepo}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}
	return buildCartDTO(items), nil
}

// AddItem puts the product in the cart, capturing the catalog price at add
// time. Adding an existing product increments its quantity.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == uuid.Nil {
		return CartDTO{}, pkgerrors.MissingField("product_id")
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if db.IsNotFound(err) {
			return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	price := money.Round2(product.Price)
	item := &models.CartItem{
		ID:           uuid.New(),
		UserID:       userID,
		ProductID:    product.ID,
		Quantity:     quantity,
		ProductName:  product.Name,
		PriceAtAdded: &price,
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return s.GetCart(ctx, userID)
}

// UpdateQuantity applies a signed delta to the line. A result below one
// removes the line entirely.
func (s *service) UpdateQuantity(ctx context.Context, userID uuid.UUID, input UpdateQuantityInput) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == uuid.Nil {
		return CartDTO{}, pkgerrors.MissingField("product_id")
	}
	if input.Delta == 0 {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "delta cannot be zero")
	}

	item, err := s.repo.FindItem(ctx, userID, input.ProductID)
	if err != nil {
		if db.IsNotFound(err) {
			return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	next := item.Quantity + input.Delta
	if next < 1 {
		if _, err := s.repo.DeleteItem(ctx, userID, input.ProductID); err != nil {
			return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
		}
		return s.GetCart(ctx, userID)
	}

	if err := s.repo.UpdateQuantity(ctx, item.ID, next); err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	return s.GetCart(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return CartDTO{}, pkgerrors.MissingField("product_id")
	}
	if _, err := s.repo.DeleteItem(ctx, userID, productID); err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return s.GetCart(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func buildCartDTO(items []models.CartItem) CartDTO {
	dto := CartDTO{
		Items:    make([]CartItemDTO, 0, len(items)),
		Subtotal: decimal.Zero,
	}
	for _, item := range items {
		line := toItemDTO(item)
		dto.Items = append(dto.Items, line)
		dto.Subtotal = dto.Subtotal.Add(line.LineTotal)
		dto.Count += item.Quantity
	}
	return dto
}
