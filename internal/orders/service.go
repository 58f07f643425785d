package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/technest-labs/storefront-backend/pkg/db"
	"github.com/technest-labs/storefront-backend/pkg/db/models"
	"github.com/technest-labs/storefront-backend/pkg/enums"
	pkgerrors "github.com/technest-labs/storefront-backend/pkg/errors"
	"github.com/technest-labs/storefront-backend/pkg/pagination"
)

// Service exposes order history to customers and order management to the
// back office.
type Service interface {
	History(ctx context.Context, userID uuid.UUID, cursor string, limit int) (OrderPageDTO, error)
	GetForUser(ctx context.Context, userID uuid.UUID, orderNumber string) (OrderDTO, error)
	AdminList(ctx context.Context, status, cursor string, limit int) (OrderPageDTO, error)
	AdminGet(ctx context.Context, id uuid.UUID) (OrderDTO, error)
	AdminUpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (OrderDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds an orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID, cursor string, limit int) (OrderPageDTO, error) {
	if userID == uuid.Nil {
		return OrderPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	parsedCursor, err := pagination.ParseCursor(cursor)
	if err != nil {
		return OrderPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit = pagination.NormalizeLimit(limit)

	rows, err := s.repo.ListByUser(ctx, userID, parsedCursor, limit)
	if err != nil {
		return OrderPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return buildPage(rows, limit), nil
}

func (s *service) GetForUser(ctx context.Context, userID uuid.UUID, orderNumber string) (OrderDTO, error) {
	if userID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if orderNumber == "" {
		return OrderDTO{}, pkgerrors.MissingField("order_number")
	}

	order, err := s.repo.FindByNumberForUser(ctx, orderNumber, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return toDTO(*order), nil
}

func (s *service) AdminList(ctx context.Context, status, cursor string, limit int) (OrderPageDTO, error) {
	filter := AdminListFilter{Limit: pagination.NormalizeLimit(limit)}

	if status != "" {
		parsed, err := enums.ParseOrderStatus(status)
		if err != nil {
			return OrderPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").WithDetails(map[string]string{"status": status})
		}
		filter.Status = &parsed
	}

	parsedCursor, err := pagination.ParseCursor(cursor)
	if err != nil {
		return OrderPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	filter.Cursor = parsedCursor

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return OrderPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return buildPage(rows, filter.Limit), nil
}

func (s *service) AdminGet(ctx context.Context, id uuid.UUID) (OrderDTO, error) {
	if id == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return toDTO(*order), nil
}

// AdminUpdateStatus advances status and payment_status. Monetary fields are
// deliberately untouchable from this path.
func (s *service) AdminUpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (OrderDTO, error) {
	if id == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if input.Status == nil && input.PaymentStatus == nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if input.Status != nil {
		status, err := enums.ParseOrderStatus(*input.Status)
		if err != nil {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").WithDetails(map[string]string{"status": *input.Status})
		}
		if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
		}
	}
	if input.PaymentStatus != nil {
		status, err := enums.ParsePaymentStatus(*input.PaymentStatus)
		if err != nil {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment status").WithDetails(map[string]string{"payment_status": *input.PaymentStatus})
		}
		if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment status")
		}
	}

	return s.AdminGet(ctx, id)
}

func buildPage(rows []models.Order, limit int) OrderPageDTO {
	page := OrderPageDTO{Items: make([]OrderDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for _, row := range rows {
		page.Items = append(page.Items, toDTO(row))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page
}
