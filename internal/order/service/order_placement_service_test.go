package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saajhamandi/internal/domain"
	apperrors "saajhamandi/internal/errors"
	orderrepo "saajhamandi/internal/order/repository"
	"saajhamandi/internal/testutil"
)

type mockTransactionManager struct {
	BeginTxFunc func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTransactionManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFunc(ctx, opts)
}

type mockOrderRepository struct {
	InsertFunc            func(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint, error)
	FindByOrderNumberFunc func(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindBySessionIDFunc   func(ctx context.Context, sessionID string) ([]domain.Order, error)
}

func (m *mockOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint, error) {
	return m.InsertFunc(ctx, tx, order)
}

func (m *mockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return m.FindByOrderNumberFunc(ctx, orderNumber)
}

func (m *mockOrderRepository) FindBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return m.FindBySessionIDFunc(ctx, sessionID)
}

type mockOrderItemRepository struct {
	InsertFunc        func(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
	FindByOrderIDFunc func(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

func (m *mockOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error) {
	return m.InsertFunc(ctx, tx, item)
}

func (m *mockOrderItemRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	return m.FindByOrderIDFunc(ctx, orderID)
}

func sampleOrder(number string) *domain.Order {
	return &domain.Order{
		OrderNumber:   number,
		SessionID:     "3f2c9a1e-8b4d-4c7a-9e21-5d6f7a8b9c0d",
		Status:        domain.OrderStatusProcessing,
		PaymentMethod: string(domain.PaymentCash),
		PaymentStatus: domain.PaymentStatusPending,
		TotalPrice:    105,
		Items: []domain.OrderItem{
			{ProductID: 9, Name: "Egg", Quantity: "6", Price: 70},
			{ProductID: 7, Name: "Butter", Quantity: "500 g", Price: 45},
		},
	}
}

// Unit Tests

func TestSave_BeginTxError(t *testing.T) {
	boom := errors.New("too many connections")
	svc := NewOrderPlacementService(
		&mockTransactionManager{
			BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				assert.Equal(t, sql.LevelReadCommitted, opts.Isolation)
				return nil, boom
			},
		},
		&mockOrderRepository{},
		&mockOrderItemRepository{},
		zap.NewNop(),
		5*time.Second,
	)

	err := svc.Save(context.Background(), sampleOrder("ORD-1-AAAA"))
	assert.ErrorIs(t, err, boom)
	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok)
}

func TestFindByOrderNumber_AttachesItems(t *testing.T) {
	svc := NewOrderPlacementService(
		&mockTransactionManager{},
		&mockOrderRepository{
			FindByOrderNumberFunc: func(ctx context.Context, orderNumber string) (*domain.Order, error) {
				return &domain.Order{ID: 12, OrderNumber: orderNumber}, nil
			},
		},
		&mockOrderItemRepository{
			FindByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
				assert.Equal(t, uint(12), orderID)
				return []domain.OrderItem{{ID: 1, OrderID: 12, Name: "Egg"}}, nil
			},
		},
		zap.NewNop(),
		5*time.Second,
	)

	order, err := svc.FindByOrderNumber(context.Background(), "ORD-1-AAAA")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1-AAAA", order.OrderNumber)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Egg", order.Items[0].Name)
}

func TestFindByOrderNumber_NotFound(t *testing.T) {
	svc := NewOrderPlacementService(
		&mockTransactionManager{},
		&mockOrderRepository{
			FindByOrderNumberFunc: func(ctx context.Context, orderNumber string) (*domain.Order, error) {
				return nil, apperrors.NewNotFoundError("order not found")
			},
		},
		&mockOrderItemRepository{
			FindByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
				t.Fatal("items must not be loaded for a missing order")
				return nil, nil
			},
		},
		zap.NewNop(),
		5*time.Second,
	)

	_, err := svc.FindByOrderNumber(context.Background(), "ORD-missing")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestFindBySessionID_AttachesItems(t *testing.T) {
	svc := NewOrderPlacementService(
		&mockTransactionManager{},
		&mockOrderRepository{
			FindBySessionIDFunc: func(ctx context.Context, sessionID string) ([]domain.Order, error) {
				return []domain.Order{{ID: 21, SessionID: sessionID}, {ID: 20, SessionID: sessionID}}, nil
			},
		},
		&mockOrderItemRepository{
			FindByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
				return []domain.OrderItem{{OrderID: orderID, Name: "Rice"}}, nil
			},
		},
		zap.NewNop(),
		5*time.Second,
	)

	orders, err := svc.FindBySessionID(context.Background(), "s-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, uint(21), orders[0].Items[0].OrderID)
	assert.Equal(t, uint(20), orders[1].Items[0].OrderID)
}

func TestFindBySessionID_ItemError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewOrderPlacementService(
		&mockTransactionManager{},
		&mockOrderRepository{
			FindBySessionIDFunc: func(ctx context.Context, sessionID string) ([]domain.Order, error) {
				return []domain.Order{{ID: 1}}, nil
			},
		},
		&mockOrderItemRepository{
			FindByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
				return nil, boom
			},
		},
		zap.NewNop(),
		5*time.Second,
	)

	_, err := svc.FindBySessionID(context.Background(), "s-1")
	assert.ErrorIs(t, err, boom)
}

// Integration Tests

func newIntegrationService(t *testing.T, db *sql.DB) *OrderPlacementService {
	return NewOrderPlacementService(
		db,
		orderrepo.NewMySQLOrderRepository(db),
		orderrepo.NewMySQLOrderItemRepository(db),
		zap.NewNop(),
		5*time.Second,
	)
}

func TestSave_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newIntegrationService(t, db)
	ctx := context.Background()

	order := sampleOrder("ORD-1700000000100-ABCD")
	require.NoError(t, svc.Save(ctx, order))
	assert.Greater(t, order.ID, uint(0))
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	got, err := svc.FindByOrderNumber(ctx, "ORD-1700000000100-ABCD")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, got.PaymentStatus)
	assert.Equal(t, 105.0, got.TotalPrice)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Egg", got.Items[0].Name)
	assert.Equal(t, "500 g", got.Items[1].Quantity)
}

func TestSave_Integration_DuplicateRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newIntegrationService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, sampleOrder("ORD-1700000000101-ABCD")))
	assert.Error(t, svc.Save(ctx, sampleOrder("ORD-1700000000101-ABCD")))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM OrderItems`).Scan(&count))
	assert.Equal(t, 2, count)
}
