package products

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/technest-labs/storefront-backend/pkg/db"
	"github.com/technest-labs/storefront-backend/pkg/db/models"
	"github.com/technest-labs/storefront-backend/pkg/enums"
	pkgerrors "github.com/technest-labs/storefront-backend/pkg/errors"
	"github.com/technest-labs/storefront-backend/pkg/money"
	"github.com/technest-labs/storefront-backend/pkg/pagination"
)

// Service exposes the catalog to the storefront and the back office.
type Service interface {
	List(ctx context.Context, category, search, cursor string, limit int) (ProductPageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "products repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, category, search, cursor string, limit int) (ProductPageDTO, error) {
	filter := ListFilter{
		Search: strings.TrimSpace(search),
		Limit:  pagination.NormalizeLimit(limit),
	}

	if category != "" {
		parsed, err := enums.ParseProductCategory(category)
		if err != nil {
			return ProductPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]string{"category": category})
		}
		filter.Category = &parsed
	}

	parsedCursor, err := pagination.ParseCursor(cursor)
	if err != nil {
		return ProductPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	filter.Cursor = parsedCursor

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return ProductPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	page := ProductPageDTO{Items: make([]ProductDTO, 0, len(rows))}
	hasMore := len(rows) > filter.Limit
	if hasMore {
		rows = rows[:filter.Limit]
	}
	for _, row := range rows {
		page.Items = append(page.Items, toDTO(row))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ProductDTO, error) {
	if id == uuid.Nil {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toDTO(*product), nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ProductDTO{}, pkgerrors.MissingField("name")
	}
	if input.Price.Sign() <= 0 {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]string{"category": input.Category})
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Price:       money.Round2(input.Price),
		Stock:       input.Stock,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		ImageURL:    input.ImageURL,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return toDTO(*created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (ProductDTO, error) {
	if id == uuid.Nil {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := applyUpdates(product, input); err != nil {
		return ProductDTO{}, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return toDTO(*updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func applyUpdates(product *models.Product, input UpdateProductInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.MissingField("name")
		}
		product.Name = name
	}
	if input.Price != nil {
		if input.Price.Sign() <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		product.Price = money.Round2(*input.Price)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		category, err := enums.ParseProductCategory(*input.Category)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]string{"category": *input.Category})
		}
		product.Category = category
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	return nil
}
