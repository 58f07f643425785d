package cart

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

func setupCartTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  product_name TEXT NOT NULL DEFAULT '',
  price_at_added NUMERIC,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, product_id)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name, priceValue string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(priceValue),
		Stock:    5,
		Category: enums.ProductCategoryAccessories,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestUpsertItemIncrementsExistingLine(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	product := createProduct(t, db, "Case", "19.99")

	captured := product.Price
	first := &models.CartItem{
		ID:           uuid.New(),
		UserID:       userID,
		ProductID:    product.ID,
		Quantity:     2,
		PriceAtAdded: &captured,
	}
	require.NoError(t, repo.UpsertItem(ctx, first))

	again := &models.CartItem{
		ID:           uuid.New(),
		UserID:       userID,
		ProductID:    product.ID,
		Quantity:     3,
		PriceAtAdded: &captured,
	}
	require.NoError(t, repo.UpsertItem(ctx, again))

	item, err := repo.FindItem(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity, "duplicate add must increment, not duplicate the row")

	items, err := repo.ListItems(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListItemsForUpdateLoadsProducts(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	product := createProduct(t, db, "Handset", "99.99")

	captured := product.Price
	require.NoError(t, repo.UpsertItem(ctx, &models.CartItem{
		ID:           uuid.New(),
		UserID:       userID,
		ProductID:    product.ID,
		Quantity:     1,
		PriceAtAdded: &captured,
	}))

	items, err := repo.ListItemsForUpdate(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Handset", items[0].Product.Name)
}

func TestListItemsForUpdateSurvivesDeletedProduct(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	product := createProduct(t, db, "Discontinued", "10.00")

	captured := product.Price
	require.NoError(t, repo.UpsertItem(ctx, &models.CartItem{
		ID:           uuid.New(),
		UserID:       userID,
		ProductID:    product.ID,
		Quantity:     1,
		ProductName:  product.Name,
		PriceAtAdded: &captured,
	}))
	require.NoError(t, db.Where("id = ?", product.ID).Delete(&models.Product{}).Error)

	items, err := repo.ListItemsForUpdate(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Product)
	require.NotNil(t, items[0].PriceAtAdded, "the captured price keeps the line sellable")
	assert.Equal(t, "Discontinued", items[0].DisplayName(), "the captured name keeps the line nameable")
}

func TestClearRemovesOnlyOwnRows(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()
	product := createProduct(t, db, "Case", "19.99")

	captured := product.Price
	require.NoError(t, repo.UpsertItem(ctx, &models.CartItem{ID: uuid.New(), UserID: owner, ProductID: product.ID, Quantity: 1, PriceAtAdded: &captured}))
	require.NoError(t, repo.UpsertItem(ctx, &models.CartItem{ID: uuid.New(), UserID: other, ProductID: product.ID, Quantity: 1, PriceAtAdded: &captured}))

	require.NoError(t, repo.Clear(ctx, owner))

	ownRows, err := repo.ListItems(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, ownRows)

	otherRows, err := repo.ListItems(ctx, other)
	require.NoError(t, err)
	assert.Len(t, otherRows, 1)
}

func TestServiceAddItemCapturesPrice(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, products.NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()
	product := createProduct(t, db, "Laptop", "899.00")

	dto, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 2, dto.Count)
	assert.Equal(t, "Laptop", dto.Items[0].Name)
	assert.Equal(t, "1798.00", dto.Subtotal.StringFixed(2))

	// a later catalog price change must not move the captured line price
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", "999.00").Error)

	dto, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "1798.00", dto.Subtotal.StringFixed(2))
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	db := setupCartTestDB(t)
	svc, err := NewService(NewRepository(db), products.NewRepository(db))
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), uuid.New(), AddItemInput{ProductID: uuid.New(), Quantity: 1})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestServiceUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, products.NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()
	product := createProduct(t, db, "Charger", "19.99")

	_, err = svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	dto, err := svc.UpdateQuantity(ctx, userID, UpdateQuantityInput{ProductID: product.ID, Delta: -1})
	require.NoError(t, err)
	assert.Empty(t, dto.Items, "decrementing the last unit removes the line")

	dto, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, dto.Count)
}

func TestServiceUpdateQuantityAppliesDelta(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, products.NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()
	product := createProduct(t, db, "Case", "10.00")

	_, err = svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	dto, err := svc.UpdateQuantity(ctx, userID, UpdateQuantityInput{ProductID: product.ID, Delta: 3})
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 5, dto.Items[0].Quantity)
	assert.Equal(t, "50.00", dto.Subtotal.StringFixed(2))
}
