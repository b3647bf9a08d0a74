package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"saajhamandi/internal/domain"
	apperrors "saajhamandi/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

// OrderPlacementService writes an order and its items in one transaction.
type OrderPlacementService struct {
	db            TransactionManager
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
	txTimeout     time.Duration
}

func NewOrderPlacementService(
	db TransactionManager,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *OrderPlacementService {
	return &OrderPlacementService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
		txTimeout:     txTimeout,
	}
}

// Save inserts the order and its items. On success the generated ids are
// written back into order.
func (s *OrderPlacementService) Save(ctx context.Context, order *domain.Order) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return apperrors.NewInternalError("beginning transaction", err)
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	orderID, err := s.orderRepo.Insert(txCtx, tx, order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.String("orderNumber", order.OrderNumber), zap.Error(err))
		return err
	}

	itemIDs := make([]uint, len(order.Items))
	for i, item := range order.Items {
		item.OrderID = orderID
		itemIDs[i], err = s.orderItemRepo.Insert(txCtx, tx, item)
		if err != nil {
			s.logger.Error("failed to insert order item",
				zap.String("orderNumber", order.OrderNumber),
				zap.Int("productId", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("orderNumber", order.OrderNumber), zap.Error(err))
		return apperrors.NewInternalError("committing transaction", err)
	}

	order.ID = orderID
	for i := range order.Items {
		order.Items[i].ID = itemIDs[i]
		order.Items[i].OrderID = orderID
	}

	s.logger.Info("transaction committed",
		zap.String("orderNumber", order.OrderNumber),
		zap.Uint("orderId", orderID),
		zap.Int("itemCount", len(order.Items)),
	)
	return nil
}

func (s *OrderPlacementService) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	items, err := s.orderItemRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// FindBySessionID returns the session's orders with their items.
func (s *OrderPlacementService) FindBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error) {
	orders, err := s.orderRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.orderItemRepo.FindByOrderID(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}
