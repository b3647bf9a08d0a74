package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saajhamandi/internal/domain"
	"saajhamandi/internal/dto"
	apperrors "saajhamandi/internal/errors"
)

type mockOrderUseCase struct {
	FindOrderFunc  func(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListOrdersFunc func(ctx context.Context, sessionID string) ([]domain.Order, error)
}

func (m *mockOrderUseCase) FindOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return m.FindOrderFunc(ctx, orderNumber)
}

func (m *mockOrderUseCase) ListOrders(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return m.ListOrdersFunc(ctx, sessionID)
}

func serve(uc OrderUseCase, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	ctrl := NewOrderController(uc, zap.NewNop())
	r.Get("/orders", ctrl.ListOrders)
	r.Get("/orders/{orderNumber}", ctrl.GetOrder)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetOrder_Success(t *testing.T) {
	uc := &mockOrderUseCase{
		FindOrderFunc: func(ctx context.Context, orderNumber string) (*domain.Order, error) {
			return &domain.Order{
				ID:            4,
				OrderNumber:   orderNumber,
				SessionID:     "3f2c9a1e-8b4d-4c7a-9e21-5d6f7a8b9c0d",
				Status:        domain.OrderStatusProcessing,
				PaymentMethod: "cash",
				PaymentStatus: domain.PaymentStatusPending,
				TotalPrice:    70,
				Items:         []domain.OrderItem{{ID: 1, OrderID: 4, ProductID: 9, Name: "Egg", Quantity: "6", Price: 70}},
				CreatedAt:     time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC),
			}, nil
		},
	}

	rec := serve(uc, "/orders/ORD-1705744800000-AB12")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, "ORD-1705744800000-AB12", resp.OrderNumber)
	assert.Equal(t, "Processing", resp.Status)
	assert.Equal(t, "Pending", resp.PaymentStatus)
	assert.Nil(t, resp.Transcript)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Egg", resp.Items[0].Name)
	assert.Equal(t, 70.0, resp.Items[0].Price)
}

func TestGetOrder_InvalidNumber(t *testing.T) {
	uc := &mockOrderUseCase{}

	rec := serve(uc, "/orders/12345")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body validationErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error)
	assert.Equal(t, "orderNumber", body.Details[0].Field)
}

func TestGetOrder_NotFound(t *testing.T) {
	uc := &mockOrderUseCase{
		FindOrderFunc: func(ctx context.Context, orderNumber string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}

	rec := serve(uc, "/orders/ORD-1705744800000-AB12")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_InternalError(t *testing.T) {
	uc := &mockOrderUseCase{
		FindOrderFunc: func(ctx context.Context, orderNumber string) (*domain.Order, error) {
			return nil, errors.New("connection refused")
		},
	}

	rec := serve(uc, "/orders/ORD-1705744800000-AB12")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "an unexpected error occurred", body.Message)
}

func TestListOrders_Success(t *testing.T) {
	const sessionID = "3f2c9a1e-8b4d-4c7a-9e21-5d6f7a8b9c0d"
	uc := &mockOrderUseCase{
		ListOrdersFunc: func(ctx context.Context, id string) ([]domain.Order, error) {
			assert.Equal(t, sessionID, id)
			return []domain.Order{
				{OrderNumber: "ORD-2-BBBB", SessionID: id, Items: []domain.OrderItem{{Name: "Rice", Price: 80}}},
				{OrderNumber: "ORD-1-AAAA", SessionID: id},
			}, nil
		},
	}

	rec := serve(uc, "/orders?sessionId="+sessionID)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.OrderListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, sessionID, resp.SessionID)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "ORD-2-BBBB", resp.Orders[0].OrderNumber)
	assert.Empty(t, resp.Orders[0].TraceID)
	assert.Equal(t, "Rice", resp.Orders[0].Items[0].Name)
	assert.Empty(t, resp.Orders[1].Items)
}

func TestListOrders_InvalidSessionID(t *testing.T) {
	uc := &mockOrderUseCase{
		ListOrdersFunc: func(ctx context.Context, id string) ([]domain.Order, error) {
			t.Fatal("use case must not be called")
			return nil, nil
		},
	}

	for _, path := range []string{"/orders", "/orders?sessionId=not-a-uuid"} {
		rec := serve(uc, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestListOrders_InternalError(t *testing.T) {
	uc := &mockOrderUseCase{
		ListOrdersFunc: func(ctx context.Context, id string) ([]domain.Order, error) {
			return nil, errors.New("db down")
		},
	}

	rec := serve(uc, "/orders?sessionId=3f2c9a1e-8b4d-4c7a-9e21-5d6f7a8b9c0d")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
