package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/technest-labs/storefront-backend/pkg/db/models"
	"github.com/technest-labs/storefront-backend/pkg/enums"
	"github.com/technest-labs/storefront-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  order_number TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal NUMERIC NOT NULL,
  tax_amount NUMERIC NOT NULL DEFAULT 0,
  shipping_cost NUMERIC NOT NULL DEFAULT 0,
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  grand_total NUMERIC NOT NULL,
  payment_method TEXT,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  transaction_id TEXT,
  ip_address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  total_price NUMERIC NOT NULL,
  image_url TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE shipping_addresses (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  order_id TEXT NOT NULL,
  full_name TEXT NOT NULL,
  address_line1 TEXT NOT NULL,
  address_line2 TEXT,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  country TEXT NOT NULL,
  phone TEXT NOT NULL,
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, number string, status enums.OrderStatus, payment enums.PaymentStatus, grandTotal string, createdAt time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		OrderNumber:   number,
		Status:        status,
		Subtotal:      decimal.RequireFromString(grandTotal),
		GrandTotal:    decimal.RequireFromString(grandTotal),
		PaymentStatus: payment,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestCreateAndFindByID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	productID := uuid.New()
	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		OrderNumber:   "ORD-20250812103000-" + userID.String(),
		Status:        enums.OrderStatusPending,
		Subtotal:      decimal.RequireFromString("249.99"),
		TaxAmount:     decimal.RequireFromString("45.00"),
		ShippingCost:  decimal.RequireFromString("50.00"),
		GrandTotal:    decimal.RequireFromString("344.99"),
		PaymentStatus: enums.PaymentStatusPending,
		Items: []models.OrderItem{
			{
				ID:          uuid.New(),
				ProductID:   &productID,
				ProductName: "Handset",
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("99.99"),
				TotalPrice:  decimal.RequireFromString("199.98"),
			},
		},
		ShippingAddress: &models.ShippingAddress{
			ID:           uuid.New(),
			UserID:       userID,
			FullName:     "Asha Verma",
			AddressLine1: "14 MG Road",
			City:         "Bengaluru",
			State:        "Karnataka",
			PostalCode:   "560001",
			Country:      "IN",
			Phone:        "+91 98450 00000",
		},
	}

	created, err := repo.Create(ctx, order)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.OrderNumber, found.OrderNumber)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Handset", found.Items[0].ProductName)
	require.NotNil(t, found.ShippingAddress)
	assert.Equal(t, "Bengaluru", found.ShippingAddress.City)
}

func TestFindByNumberScopedToUser(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	order := seedOrder(t, db, owner, "ORD-20250812103000-"+owner.String(), enums.OrderStatusPending, enums.PaymentStatusPending, "100.00", time.Now().UTC())

	found, err := repo.FindByNumberForUser(ctx, order.OrderNumber, owner)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindByNumberForUser(ctx, order.OrderNumber, other)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListByUserPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2025, 8, 12, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedOrder(t, db, userID, fmt.Sprintf("ORD-2025081210%02d00-%s", i, userID), enums.OrderStatusPending, enums.PaymentStatusPending, "10.00", base.Add(time.Duration(i)*time.Minute))
	}
	seedOrder(t, db, uuid.New(), "ORD-other", enums.OrderStatusPending, enums.PaymentStatusPending, "10.00", base)

	firstPage, err := repo.ListByUser(ctx, userID, nil, 2)
	require.NoError(t, err)
	require.Len(t, firstPage, 3, "limit plus one row to detect the next page")
	assert.True(t, firstPage[0].CreatedAt.After(firstPage[1].CreatedAt))

	cursor := &pagination.Cursor{CreatedAt: firstPage[1].CreatedAt, ID: firstPage[1].ID}
	secondPage, err := repo.ListByUser(ctx, userID, cursor, 2)
	require.NoError(t, err)
	require.NotEmpty(t, secondPage)
	for _, row := range secondPage {
		assert.True(t, row.CreatedAt.Before(firstPage[1].CreatedAt))
		assert.Equal(t, userID, row.UserID)
	}
}

func TestAdminListFiltersByStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seedOrder(t, db, uuid.New(), "ORD-a", enums.OrderStatusPending, enums.PaymentStatusPending, "10.00", now)
	seedOrder(t, db, uuid.New(), "ORD-b", enums.OrderStatusShipped, enums.PaymentStatusPaid, "20.00", now.Add(time.Second))
	seedOrder(t, db, uuid.New(), "ORD-c", enums.OrderStatusShipped, enums.PaymentStatusPaid, "30.00", now.Add(2*time.Second))

	shipped := enums.OrderStatusShipped
	rows, err := repo.List(ctx, AdminListFilter{Status: &shipped})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, enums.OrderStatusShipped, row.Status)
	}
}

func TestStatusUpdatesLeaveTotalsAlone(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), "ORD-x", enums.OrderStatusPending, enums.PaymentStatusPending, "344.99", time.Now().UTC())

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, enums.OrderStatusShipped))
	require.NoError(t, repo.UpdatePaymentStatus(ctx, order.ID, enums.PaymentStatusPaid))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, found.Status)
	assert.Equal(t, enums.PaymentStatusPaid, found.PaymentStatus)
	assert.Equal(t, "344.99", found.GrandTotal.StringFixed(2))
}

func TestCountByStatusAndRevenue(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seedOrder(t, db, uuid.New(), "ORD-1", enums.OrderStatusPending, enums.PaymentStatusPending, "10.00", now)
	seedOrder(t, db, uuid.New(), "ORD-2", enums.OrderStatusPending, enums.PaymentStatusPaid, "25.50", now)
	seedOrder(t, db, uuid.New(), "ORD-3", enums.OrderStatusDelivered, enums.PaymentStatusPaid, "74.50", now)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[enums.OrderStatusPending])
	assert.EqualValues(t, 1, counts[enums.OrderStatusDelivered])

	revenue, err := repo.SumGrandTotal(ctx, enums.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, "100.00", revenue.StringFixed(2))
}

func TestSumGrandTotalEmptyTable(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	revenue, err := repo.SumGrandTotal(context.Background(), enums.PaymentStatusPaid)
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())
}
