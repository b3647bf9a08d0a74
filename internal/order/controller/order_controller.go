package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"saajhamandi/internal/domain"
	"saajhamandi/internal/dto"
	apperrors "saajhamandi/internal/errors"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d+-[0-9A-Z]{4}$`)

type OrderUseCase interface {
	FindOrder(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListOrders(ctx context.Context, sessionID string) ([]domain.Order, error)
}

type OrderController struct {
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderNumber := chi.URLParam(r, "orderNumber")
	if !orderNumberPattern.MatchString(orderNumber) {
		logger.Warn("invalid orderNumber in path", zap.String("orderNumber", orderNumber))
		c.writeValidationError(w, traceID, "invalid orderNumber", apperrors.ValidationDetail{
			Field:   "orderNumber",
			Message: "orderNumber must look like ORD-<digits>-<4 characters>",
		})
		return
	}

	order, err := c.useCase.FindOrder(r.Context(), orderNumber)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		logger.Error("unexpected error", zap.String("orderNumber", orderNumber), zap.Error(err))
		c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
		return
	}

	resp := toOrderResponse(order)
	resp.TraceID = traceID
	c.writeJSON(w, http.StatusOK, resp)
}

// ListOrders handles GET /orders?sessionId=.
func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessionID := r.URL.Query().Get("sessionId")
	if _, err := uuid.Parse(sessionID); err != nil {
		logger.Warn("invalid sessionId query parameter", zap.String("sessionId", sessionID))
		c.writeValidationError(w, traceID, "invalid sessionId", apperrors.ValidationDetail{
			Field:   "sessionId",
			Message: "sessionId must be a valid UUID",
		})
		return
	}

	orders, err := c.useCase.ListOrders(r.Context(), sessionID)
	if err != nil {
		logger.Error("unexpected error", zap.String("sessionId", sessionID), zap.Error(err))
		c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
		return
	}

	resp := dto.OrderListResponse{
		TraceID:   traceID,
		SessionID: sessionID,
		Orders:    make([]dto.OrderResponse, len(orders)),
	}
	for i := range orders {
		resp.Orders[i] = toOrderResponse(&orders[i])
	}
	c.writeJSON(w, http.StatusOK, resp)
}

func toOrderResponse(order *domain.Order) dto.OrderResponse {
	items := make([]dto.OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = dto.OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return dto.OrderResponse{
		OrderNumber:   order.OrderNumber,
		SessionID:     order.SessionID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		TotalPrice:    order.TotalPrice,
		Transcript:    order.Transcript,
		Items:         items,
		CreatedAt:     order.CreatedAt.UTC(),
	}
}

func (c *OrderController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string) {
	c.writeJSON(w, statusCode, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
