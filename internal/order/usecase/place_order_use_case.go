package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"saajhamandi/internal/domain"
	apperrors "saajhamandi/internal/errors"
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

type OrderStore interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error)
}

type PlaceOrderUseCase struct {
	store            OrderStore
	logger           *zap.Logger
	maxRetryAttempts int
	now              func() time.Time
	suffix           func() string
	sleep            func(time.Duration)
}

func NewPlaceOrderUseCase(store OrderStore, logger *zap.Logger, maxRetryAttempts int) *PlaceOrderUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &PlaceOrderUseCase{
		store:            store,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		now:              time.Now,
		suffix:           randomSuffix,
		sleep:            time.Sleep,
	}
}

// PlaceOrder stores the confirmed contents of a session as a new order.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, session *domain.VoiceOrderSession) (*domain.Order, error) {
	uc.logger.Info("place order started", zap.String("sessionId", session.ID), zap.Int("itemCount", len(session.Items)))

	if len(session.Items) == 0 {
		return nil, apperrors.NewConflictError("cannot place an order without items")
	}

	order := uc.buildOrder(session)
	if err := uc.saveWithRetry(ctx, order); err != nil {
		return nil, err
	}

	uc.logger.Info("place order completed", zap.String("sessionId", session.ID), zap.String("orderNumber", order.OrderNumber))
	return order, nil
}

func (uc *PlaceOrderUseCase) FindOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return uc.store.FindByOrderNumber(ctx, orderNumber)
}

func (uc *PlaceOrderUseCase) ListOrders(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return uc.store.FindBySessionID(ctx, sessionID)
}

func (uc *PlaceOrderUseCase) buildOrder(session *domain.VoiceOrderSession) *domain.Order {
	items := make([]domain.OrderItem, len(session.Items))
	for i, item := range session.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.DisplayName,
			Quantity:  item.Quantity,
			Price:     item.Amount,
		}
	}

	var transcript *string
	if session.Transcript != "" {
		t := session.Transcript
		transcript = &t
	}

	return &domain.Order{
		OrderNumber:   uc.newOrderNumber(),
		SessionID:     session.ID,
		Status:        domain.OrderStatusProcessing,
		PaymentMethod: string(session.PaymentMethod),
		PaymentStatus: domain.PaymentStatusFor(session.PaymentMethod),
		TotalPrice:    session.Total,
		Transcript:    transcript,
		Items:         items,
	}
}

// newOrderNumber renders ORD-<unix millis>-<4 chars>.
func (uc *PlaceOrderUseCase) newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", uc.now().UnixMilli(), uc.suffix())
}

func (uc *PlaceOrderUseCase) saveWithRetry(ctx context.Context, order *domain.Order) error {
	maxAttempts := uc.maxRetryAttempts
	// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms), etc.
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = uc.store.Save(ctx, order)
		if err == nil {
			return nil
		}

		switch {
		case isDeadlockError(err):
			if attempt < maxAttempts {
				base := backoffs[min(attempt-1, len(backoffs)-1)]
				// base ±20%
				delay := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
				uc.sleep(delay)
				uc.logger.Warn("deadlock detected, retrying", zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.String("orderNumber", order.OrderNumber))
				continue
			}
		case isDuplicateOrderNumber(err):
			previous := order.OrderNumber
			order.OrderNumber = uc.newOrderNumber()
			uc.logger.Warn("order number taken, regenerating", zap.String("previous", previous), zap.String("orderNumber", order.OrderNumber))
			continue
		default:
			return err
		}
	}

	if isDeadlockError(err) {
		return apperrors.NewDeadlockError("max retries exceeded")
	}
	return err
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
	}
	return false
}

func isDuplicateOrderNumber(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	_, ok := apperrors.IsConflictError(err)
	return ok
}

func randomSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
}
