package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/technest-labs/storefront-backend/internal/products"
	"github.com/technest-labs/storefront-backend/pkg/db/models"
	"github.com/technest-labs/storefront-backend/pkg/enums"
	pkgerrors "github.com/technest-labs/storefront-backend/pkg/errors"
)

func setupWishlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT 'other',
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE wishlist_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, product_id)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newWishlistService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		WishlistRepo: NewRepository(db),
		ProductRepo:  products.NewRepository(db),
	})
	require.NoError(t, err)
	return svc
}

func seedWishlistProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString("49.99"),
		Stock:    3,
		Category: enums.ProductCategoryEarbuds,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestToggleAddsThenRemoves(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	ctx := context.Background()
	userID := uuid.New()
	product := seedWishlistProduct(t, db, "Buds")

	result, err := svc.Toggle(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.True(t, result.Added)

	page, err := svc.GetWishlist(ctx, userID, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Buds", page.Items[0].Name)

	result, err = svc.Toggle(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.False(t, result.Added)

	page, err = svc.GetWishlist(ctx, userID, "", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestToggleUnknownProduct(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	ctx := context.Background()
	userID := uuid.New()
	product := seedWishlistProduct(t, db, "Buds")

	_, err := svc.Toggle(ctx, userID, product.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, userID, product.ID))
	require.NoError(t, svc.RemoveItem(ctx, userID, product.ID), "removing an absent row is not an error")
}
