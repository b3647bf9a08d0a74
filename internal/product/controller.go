package product

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "saajhamandi/internal/errors"
)

const maxNameLength = 64

type Controller struct {
	useCase BrowseUseCase
	logger  *zap.Logger
}

func NewController(useCase BrowseUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	category := r.URL.Query().Get("category")
	if len(category) > maxNameLength {
		c.writeValidationError(w, traceID, "category too long", apperrors.ValidationDetail{
			Field:   "category",
			Message: "category exceeds maximum of 64 characters",
		})
		return
	}

	resp, err := c.useCase.ListProducts(r.Context(), category)
	if err != nil {
		c.writeInternalError(w, traceID, err)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" || len(name) > maxNameLength {
		c.writeValidationError(w, traceID, "invalid name", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must be between 1 and 64 characters",
		})
		return
	}

	resp, err := c.useCase.GetProduct(r.Context(), name)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]any{
				"traceId":   traceID,
				"status":    http.StatusNotFound,
				"code":      "NOT_FOUND",
				"message":   err.Error(),
				"timestamp": time.Now().UTC(),
			})
			return
		}
		c.writeInternalError(w, traceID, err)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) writeInternalError(w http.ResponseWriter, traceID string, err error) {
	c.logger.Error("product lookup failed", zap.String("traceId", traceID), zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"traceId": traceID,
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
