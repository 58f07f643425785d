package admin

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/technest-labs/storefront-backend/internal/orders"
	"github.com/technest-labs/storefront-backend/pkg/enums"
	pkgerrors "github.com/technest-labs/storefront-backend/pkg/errors"
)

type userCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

type productCounter interface {
	CountProducts(ctx context.Context) (int64, error)
}

// DashboardDTO carries the back-office overview tiles. Every figure is
// derived from the canonical tables at read time.
type DashboardDTO struct {
	TotalOrders    int64                       `json:"total_orders"`
	OrdersByStatus map[enums.OrderStatus]int64 `json:"orders_by_status"`
	PaidRevenue    decimal.Decimal             `json:"paid_revenue"`
	TotalCustomers int64                       `json:"total_customers"`
	TotalProducts  int64                       `json:"total_products"`
}

// Service aggregates the admin dashboard.
type Service interface {
	Dashboard(ctx context.Context) (DashboardDTO, error)
}

type service struct {
	ordersRepo orders.Repository
	users      userCounter
	products   productCounter
}

// NewService builds the dashboard service.
func NewService(ordersRepo orders.Repository, users userCounter, products productCounter) (Service, error) {
	if ordersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user counter is required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product counter is required")
	}
	return &service{ordersRepo: ordersRepo, users: users, products: products}, nil
}

func (s *service) Dashboard(ctx context.Context) (DashboardDTO, error) {
	counts, err := s.ordersRepo.CountByStatus(ctx)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	revenue, err := s.ordersRepo.SumGrandTotal(ctx, enums.PaymentStatusPaid)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}

	customers, err := s.users.CountUsers(ctx)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}

	products, err := s.products.CountProducts(ctx)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}

	return DashboardDTO{
		TotalOrders:    total,
		OrdersByStatus: counts,
		PaidRevenue:    revenue,
		TotalCustomers: customers,
		TotalProducts:  products,
	}, nil
}
