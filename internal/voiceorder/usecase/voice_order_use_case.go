package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"saajhamandi/internal/domain"
	apperrors "saajhamandi/internal/errors"
	"saajhamandi/internal/voiceorder/service"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.VoiceOrderSession) error
	FindByID(ctx context.Context, id string) (*domain.VoiceOrderSession, error)
	Update(ctx context.Context, id string, fn func(*domain.VoiceOrderSession) error) (*domain.VoiceOrderSession, error)
}

type TranscriptPipeline interface {
	Process(utterance *string) (*service.Result, error)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, session *domain.VoiceOrderSession) (*domain.Order, error)
}

type VoiceOrderUseCase struct {
	sessions     SessionRepository
	pipeline     TranscriptPipeline
	orders       OrderPlacer
	maxRecording time.Duration
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
}

// NewVoiceOrderUseCase builds the use case. A recording left open for
// maxRecording is ended the next time its session is touched.
func NewVoiceOrderUseCase(
	sessions SessionRepository,
	pipeline TranscriptPipeline,
	orders OrderPlacer,
	maxRecording time.Duration,
	logger *zap.Logger,
) *VoiceOrderUseCase {
	return &VoiceOrderUseCase{
		sessions:     sessions,
		pipeline:     pipeline,
		orders:       orders,
		maxRecording: maxRecording,
		logger:       logger,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (uc *VoiceOrderUseCase) CreateSession(ctx context.Context) (*domain.VoiceOrderSession, error) {
	session := domain.NewVoiceOrderSession(uc.newID(), uc.now())
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	uc.logger.Info("voice session created", zap.String("sessionId", session.ID))
	return session, nil
}

func (uc *VoiceOrderUseCase) GetSession(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
	session, err := uc.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.Capturing {
		return session, nil
	}
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		uc.expireCapture(s)
		return nil
	})
}

func (uc *VoiceOrderUseCase) StartRecording(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		uc.expireCapture(s)
		started, err := s.StartCapture(uc.now())
		if err != nil {
			return err
		}
		if !started {
			uc.logger.Debug("recording already active", zap.String("sessionId", id))
		}
		return nil
	})
}

func (uc *VoiceOrderUseCase) CancelRecording(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		s.CancelCapture(uc.now())
		return nil
	})
}

// SubmitTranscript consumes the result of the active recording. A nil
// utterance means no speech engine was available; the order is simulated.
// A transcript arriving after the recording window is dropped and the
// session asks for a new recording.
// An utterance with no known products leaves the session in RECORDING with a
// message and is not an error.
func (uc *VoiceOrderUseCase) SubmitTranscript(ctx context.Context, id string, utterance *string) (*domain.VoiceOrderSession, error) {
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		if uc.expireCapture(s) {
			return nil
		}
		if !s.AcceptsCapture() {
			return apperrors.NewConflictError(fmt.Sprintf("session %s has no active recording", id))
		}

		result, err := uc.pipeline.Process(utterance)
		if err != nil && !errors.Is(err, service.ErrNoItemsRecognized) {
			return err
		}

		uc.logger.Info("transcript processed",
			zap.String("sessionId", id),
			zap.Bool("simulated", result.Simulated),
			zap.Int("itemCount", len(result.Items)),
			zap.Float64("total", result.Total),
		)
		return s.Review(result.Transcript, result.Items, result.Total, uc.now())
	})
}

// expireCapture ends a recording older than the recording window.
func (uc *VoiceOrderUseCase) expireCapture(s *domain.VoiceOrderSession) bool {
	startedAt := s.CaptureStartedAt
	if !s.ExpireCapture(uc.now(), uc.maxRecording) {
		return false
	}
	uc.logger.Info("recording timed out",
		zap.String("sessionId", s.ID),
		zap.Time("startedAt", startedAt),
		zap.Duration("window", uc.maxRecording),
	)
	return true
}

func (uc *VoiceOrderUseCase) ReportCaptureError(ctx context.Context, id string, reason string) (*domain.VoiceOrderSession, error) {
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		uc.logger.Warn("speech capture failed", zap.String("sessionId", id), zap.String("reason", reason))
		return s.CaptureFailed(reason, uc.now())
	})
}

func (uc *VoiceOrderUseCase) Back(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		return s.Back(uc.now())
	})
}

func (uc *VoiceOrderUseCase) Checkout(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		return s.Checkout(uc.now())
	})
}

func (uc *VoiceOrderUseCase) SelectPaymentMethod(ctx context.Context, id string, method domain.PaymentMethod) (*domain.VoiceOrderSession, error) {
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		return s.SelectPaymentMethod(method, uc.now())
	})
}

// SubmitPayment applies the client's payment outcome. On success the order
// is placed before the session is confirmed; if placement fails the session
// stays in PAYING so the payment step can be retried.
func (uc *VoiceOrderUseCase) SubmitPayment(ctx context.Context, id string, success bool, reason string) (*domain.VoiceOrderSession, error) {
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		if !success {
			uc.logger.Info("payment failed", zap.String("sessionId", id), zap.String("reason", reason))
			return s.PaymentFailed(reason, uc.now())
		}

		if s.State != domain.SessionPaying {
			return apperrors.NewConflictError(fmt.Sprintf("session %s is not awaiting payment", id))
		}

		order, err := uc.orders.PlaceOrder(ctx, s)
		if err != nil {
			uc.logger.Error("placing order failed", zap.String("sessionId", id), zap.Error(err))
			return s.OrderNotPlaced(uc.now())
		}

		uc.logger.Info("order placed",
			zap.String("sessionId", id),
			zap.String("orderNumber", order.OrderNumber),
			zap.String("paymentMethod", order.PaymentMethod),
			zap.Float64("totalPrice", order.TotalPrice),
		)
		return s.Confirm(order.OrderNumber, uc.now())
	})
}

func (uc *VoiceOrderUseCase) Restart(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
	return uc.sessions.Update(ctx, id, func(s *domain.VoiceOrderSession) error {
		s.Restart(uc.now())
		return nil
	})
}
