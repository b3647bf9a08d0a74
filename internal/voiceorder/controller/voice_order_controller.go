package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"saajhamandi/internal/domain"
	"saajhamandi/internal/dto"
	apperrors "saajhamandi/internal/errors"
	"saajhamandi/internal/voiceorder/service"
)

const maxUtteranceLength = 2000

type VoiceOrderUseCase interface {
	CreateSession(ctx context.Context) (*domain.VoiceOrderSession, error)
	GetSession(ctx context.Context, id string) (*domain.VoiceOrderSession, error)
	StartRecording(ctx context.Context, id string) (*domain.VoiceOrderSession, error)
	CancelRecording(ctx context.Context, id string) (*domain.VoiceOrderSession, error)
	SubmitTranscript(ctx context.Context, id string, utterance *string) (*domain.VoiceOrderSession, error)
	ReportCaptureError(ctx context.Context, id string, reason string) (*domain.VoiceOrderSession, error)
	Back(ctx context.Context, id string) (*domain.VoiceOrderSession, error)
	Checkout(ctx context.Context, id string) (*domain.VoiceOrderSession, error)
	SelectPaymentMethod(ctx context.Context, id string, method domain.PaymentMethod) (*domain.VoiceOrderSession, error)
	SubmitPayment(ctx context.Context, id string, success bool, reason string) (*domain.VoiceOrderSession, error)
	Restart(ctx context.Context, id string) (*domain.VoiceOrderSession, error)
}

type VoiceOrderController struct {
	useCase      VoiceOrderUseCase
	pricer       *service.Pricer
	maxRecording time.Duration
	logger       *zap.Logger
}

func NewVoiceOrderController(useCase VoiceOrderUseCase, maxRecording time.Duration, logger *zap.Logger) *VoiceOrderController {
	return &VoiceOrderController{
		useCase:      useCase,
		pricer:       service.NewPricer(),
		maxRecording: maxRecording,
		logger:       logger,
	}
}

func (c *VoiceOrderController) CreateSession(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	session, err := c.useCase.CreateSession(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, c.toResponse(traceID, session))
}

func (c *VoiceOrderController) GetSession(w http.ResponseWriter, r *http.Request) {
	c.withSession(w, r, c.useCase.GetSession)
}

func (c *VoiceOrderController) StartRecording(w http.ResponseWriter, r *http.Request) {
	c.withSession(w, r, c.useCase.StartRecording)
}

func (c *VoiceOrderController) CancelRecording(w http.ResponseWriter, r *http.Request) {
	c.withSession(w, r, c.useCase.CancelRecording)
}

func (c *VoiceOrderController) Back(w http.ResponseWriter, r *http.Request) {
	c.withSession(w, r, c.useCase.Back)
}

func (c *VoiceOrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	c.withSession(w, r, c.useCase.Checkout)
}

func (c *VoiceOrderController) Restart(w http.ResponseWriter, r *http.Request) {
	c.withSession(w, r, c.useCase.Restart)
}

func (c *VoiceOrderController) SubmitTranscript(w http.ResponseWriter, r *http.Request) {
	var req dto.TranscriptRequest
	c.withBody(w, r, &req, func() error {
		if req.Utterance != nil && utf8.RuneCountInString(*req.Utterance) > maxUtteranceLength {
			return apperrors.NewValidationError("utterance too long", apperrors.ValidationDetail{
				Field:   "utterance",
				Message: "utterance exceeds maximum of 2000 characters",
			})
		}
		return nil
	}, func(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
		return c.useCase.SubmitTranscript(ctx, id, req.Utterance)
	})
}

func (c *VoiceOrderController) ReportCaptureError(w http.ResponseWriter, r *http.Request) {
	var req dto.CaptureErrorRequest
	c.withBody(w, r, &req, func() error {
		if req.Error == "" {
			return apperrors.NewValidationError("error is required", apperrors.ValidationDetail{
				Field:   "error",
				Message: "error must not be empty",
			})
		}
		return nil
	}, func(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
		return c.useCase.ReportCaptureError(ctx, id, req.Error)
	})
}

func (c *VoiceOrderController) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentMethodRequest
	c.withBody(w, r, &req, func() error {
		if !domain.PaymentMethod(req.Method).Valid() {
			return apperrors.NewValidationError("invalid payment method", apperrors.ValidationDetail{
				Field:   "method",
				Message: "method must be one of cash, card, upi",
			})
		}
		return nil
	}, func(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
		return c.useCase.SelectPaymentMethod(ctx, id, domain.PaymentMethod(req.Method))
	})
}

func (c *VoiceOrderController) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentRequest
	c.withBody(w, r, &req, func() error {
		if req.Success == nil {
			return apperrors.NewValidationError("success is required", apperrors.ValidationDetail{
				Field:   "success",
				Message: "success must be true or false",
			})
		}
		return nil
	}, func(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
		return c.useCase.SubmitPayment(ctx, id, *req.Success, req.Reason)
	})
}

func (c *VoiceOrderController) withSession(
	w http.ResponseWriter,
	r *http.Request,
	call func(ctx context.Context, id string) (*domain.VoiceOrderSession, error),
) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessionID, ok := c.sessionID(w, r, traceID, logger)
	if !ok {
		return
	}

	session, err := call(r.Context(), sessionID)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger.With(zap.String("sessionId", sessionID)))
		return
	}

	c.writeJSON(w, http.StatusOK, c.toResponse(traceID, session))
}

func (c *VoiceOrderController) withBody(
	w http.ResponseWriter,
	r *http.Request,
	req any,
	validate func() error,
	call func(ctx context.Context, id string) (*domain.VoiceOrderSession, error),
) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessionID, ok := c.sessionID(w, r, traceID, logger)
	if !ok {
		return
	}

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if validationErr := validate(); validationErr != nil {
		ve, _ := apperrors.IsValidationError(validationErr)
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	session, err := call(r.Context(), sessionID)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger.With(zap.String("sessionId", sessionID)))
		return
	}

	c.writeJSON(w, http.StatusOK, c.toResponse(traceID, session))
}

func (c *VoiceOrderController) sessionID(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (string, bool) {
	raw := chi.URLParam(r, "sessionId")
	if _, err := uuid.Parse(raw); err != nil {
		logger.Warn("invalid sessionId in path", zap.String("sessionId", raw))
		c.writeValidationError(w, traceID, "invalid sessionId", apperrors.ValidationDetail{
			Field:   "sessionId",
			Message: "sessionId must be a UUID",
		})
		return "", false
	}
	return raw, true
}

func (c *VoiceOrderController) toResponse(traceID string, s *domain.VoiceOrderSession) dto.VoiceSessionResponse {
	items := make([]dto.LineItemDTO, len(s.Items))
	for i, item := range s.Items {
		items[i] = dto.LineItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.DisplayName,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	resp := dto.VoiceSessionResponse{
		TraceID:        traceID,
		SessionID:      s.ID,
		State:          string(s.State),
		Recording:      s.Capturing,
		Transcript:     s.Transcript,
		Items:          items,
		Total:          s.Total,
		TotalFormatted: c.pricer.FormatPrice(s.Total),
		PaymentMethod:  string(s.PaymentMethod),
		Message:        s.Message,
		OrderNumber:    s.OrderNumber,
		UpdatedAt:      s.UpdatedAt.UTC(),
	}
	if s.Capturing {
		deadline := s.CaptureStartedAt.Add(c.maxRecording).UTC()
		resp.RecordingDeadline = &deadline
	}
	return resp
}

func (c *VoiceOrderController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		logger.Info("rejected session transition", zap.Error(err))
		c.writeErrorResponse(w, traceID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *VoiceOrderController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string) {
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

func (c *VoiceOrderController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *VoiceOrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
