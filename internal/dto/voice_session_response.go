package dto

import "time"

type VoiceSessionResponse struct {
	TraceID           string        `json:"traceId"`
	SessionID         string        `json:"sessionId"`
	State             string        `json:"state"`
	Recording         bool          `json:"recording"`
	RecordingDeadline *time.Time    `json:"recordingDeadline,omitempty"`
	Transcript        string        `json:"transcript"`
	Items             []LineItemDTO `json:"items"`
	Total             float64       `json:"total"`
	TotalFormatted    string        `json:"totalFormatted"`
	PaymentMethod     string        `json:"paymentMethod"`
	Message           string        `json:"message,omitempty"`
	OrderNumber       string        `json:"orderNumber,omitempty"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

type LineItemDTO struct {
	ID        string `json:"id"`
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
}

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
