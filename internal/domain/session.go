package domain

import (
	"fmt"
	"time"

	apperrors "saajhamandi/internal/errors"
)

type SessionState string

const (
	SessionRecording SessionState = "RECORDING"
	SessionReviewing SessionState = "REVIEWING"
	SessionPaying    SessionState = "PAYING"
	SessionConfirmed SessionState = "CONFIRMED"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

const (
	MessageNoItemsRecognized = "No recognized grocery items found. Please try again."
	MessagePaymentFailed     = "Payment failed. Please try again."
	MessageOrderNotPlaced    = "Your payment went through but the order could not be placed. Please try again."
	MessageRecordingTimedOut = "Recording timed out. Please try again."
)

// VoiceOrderSession walks one voice order through
// RECORDING -> REVIEWING -> PAYING -> CONFIRMED.
//
// The session is not safe for concurrent use; callers serialize access.
type VoiceOrderSession struct {
	ID               string
	State            SessionState
	Capturing        bool
	CaptureStartedAt time.Time
	Transcript       string
	Items            []LineItem
	Total            float64
	PaymentMethod    PaymentMethod
	Message          string
	OrderNumber      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewVoiceOrderSession(id string, now time.Time) *VoiceOrderSession {
	return &VoiceOrderSession{
		ID:            id,
		State:         SessionRecording,
		PaymentMethod: PaymentCash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// StartCapture opens a recording. It reports false without changing anything
// when a recording is already active.
func (s *VoiceOrderSession) StartCapture(now time.Time) (bool, error) {
	if s.State != SessionRecording {
		return false, s.conflict("start recording")
	}
	if s.Capturing {
		return false, nil
	}

	s.Capturing = true
	s.CaptureStartedAt = now
	s.Transcript = ""
	s.Items = nil
	s.Total = 0
	s.Message = ""
	s.UpdatedAt = now
	return true, nil
}

// CancelCapture stops an active recording and drops whatever it would have
// produced. Cancelling when nothing is recording is a no-op.
func (s *VoiceOrderSession) CancelCapture(now time.Time) {
	if !s.Capturing {
		return
	}
	s.Capturing = false
	s.CaptureStartedAt = time.Time{}
	s.UpdatedAt = now
}

// AcceptsCapture reports whether a capture result may be consumed. Only one
// result is consumed per recording.
func (s *VoiceOrderSession) AcceptsCapture() bool {
	return s.State == SessionRecording && s.Capturing
}

// Review consumes the capture result. With at least one item the session
// moves to REVIEWING; otherwise it stays in RECORDING with a retryable message.
func (s *VoiceOrderSession) Review(transcript string, items []LineItem, total float64, now time.Time) error {
	if !s.AcceptsCapture() {
		return s.conflict("accept a transcript")
	}

	s.Capturing = false
	s.CaptureStartedAt = time.Time{}
	s.Transcript = transcript
	s.UpdatedAt = now

	if len(items) == 0 {
		s.Items = nil
		s.Total = 0
		s.Message = MessageNoItemsRecognized
		return nil
	}

	s.Items = items
	s.Total = total
	s.Message = ""
	s.State = SessionReviewing
	return nil
}

// ExpireCapture ends a recording that has been open for window or longer and
// reports whether it did. A window of zero or less never expires.
func (s *VoiceOrderSession) ExpireCapture(now time.Time, window time.Duration) bool {
	if !s.Capturing || window <= 0 || now.Sub(s.CaptureStartedAt) < window {
		return false
	}
	s.Capturing = false
	s.CaptureStartedAt = time.Time{}
	s.Message = MessageRecordingTimedOut
	s.UpdatedAt = now
	return true
}

// CaptureFailed records a speech engine error such as a denied microphone.
func (s *VoiceOrderSession) CaptureFailed(reason string, now time.Time) error {
	if !s.AcceptsCapture() {
		return s.conflict("report a capture error")
	}
	s.Capturing = false
	s.CaptureStartedAt = time.Time{}
	s.Message = fmt.Sprintf("Speech recognition error: %s", reason)
	s.UpdatedAt = now
	return nil
}

func (s *VoiceOrderSession) Back(now time.Time) error {
	switch s.State {
	case SessionReviewing:
		s.State = SessionRecording
	case SessionPaying:
		s.State = SessionReviewing
	default:
		return s.conflict("go back")
	}
	s.Message = ""
	s.UpdatedAt = now
	return nil
}

// MaxOrderTotal is the largest total an order row can store (DECIMAL(10,2)).
const MaxOrderTotal = 99999999.99

func (s *VoiceOrderSession) Checkout(now time.Time) error {
	if s.State != SessionReviewing {
		return s.conflict("check out")
	}
	if len(s.Items) == 0 {
		return apperrors.NewConflictError("cannot check out a session without items")
	}
	if s.Total > MaxOrderTotal {
		return apperrors.NewConflictError(fmt.Sprintf("order total %.2f exceeds the maximum of %.2f", s.Total, MaxOrderTotal))
	}
	s.State = SessionPaying
	s.Message = ""
	s.UpdatedAt = now
	return nil
}

func (s *VoiceOrderSession) SelectPaymentMethod(method PaymentMethod, now time.Time) error {
	if s.State != SessionPaying {
		return s.conflict("select a payment method")
	}
	if !method.Valid() {
		return apperrors.NewValidationError("invalid payment method", apperrors.ValidationDetail{
			Field:   "method",
			Message: "method must be one of cash, card, upi",
		})
	}
	s.PaymentMethod = method
	s.UpdatedAt = now
	return nil
}

// PaymentFailed keeps the session in PAYING so the payment can be retried.
func (s *VoiceOrderSession) PaymentFailed(reason string, now time.Time) error {
	if s.State != SessionPaying {
		return s.conflict("record a payment failure")
	}
	s.Message = MessagePaymentFailed
	if reason != "" {
		s.Message = fmt.Sprintf("Payment failed: %s. Please try again.", reason)
	}
	s.UpdatedAt = now
	return nil
}

// OrderNotPlaced records that the order could not be stored after a
// successful payment. The session stays in PAYING.
func (s *VoiceOrderSession) OrderNotPlaced(now time.Time) error {
	if s.State != SessionPaying {
		return s.conflict("record an order failure")
	}
	s.Message = MessageOrderNotPlaced
	s.UpdatedAt = now
	return nil
}

func (s *VoiceOrderSession) Confirm(orderNumber string, now time.Time) error {
	if s.State != SessionPaying {
		return s.conflict("confirm")
	}
	s.State = SessionConfirmed
	s.OrderNumber = orderNumber
	s.Message = ""
	s.UpdatedAt = now
	return nil
}

// Restart clears all session data and returns to RECORDING. It is allowed
// from every state.
func (s *VoiceOrderSession) Restart(now time.Time) {
	s.State = SessionRecording
	s.Capturing = false
	s.CaptureStartedAt = time.Time{}
	s.Transcript = ""
	s.Items = nil
	s.Total = 0
	s.PaymentMethod = PaymentCash
	s.Message = ""
	s.OrderNumber = ""
	s.UpdatedAt = now
}

// Clone returns a copy that shares nothing mutable with s.
func (s *VoiceOrderSession) Clone() *VoiceOrderSession {
	c := *s
	if s.Items != nil {
		c.Items = make([]LineItem, len(s.Items))
		copy(c.Items, s.Items)
	}
	return &c
}

func (s *VoiceOrderSession) conflict(action string) error {
	return apperrors.NewConflictError(fmt.Sprintf("cannot %s while session is %s", action, s.State))
}
