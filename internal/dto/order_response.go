package dto

import "time"

type OrderResponse struct {
	TraceID       string         `json:"traceId,omitempty"`
	OrderNumber   string         `json:"orderNumber"`
	SessionID     string         `json:"sessionId"`
	Status        string         `json:"status"`
	PaymentMethod string         `json:"paymentMethod"`
	PaymentStatus string         `json:"paymentStatus"`
	TotalPrice    float64        `json:"totalPrice"`
	Transcript    *string        `json:"transcript"`
	Items         []OrderItemDTO `json:"items"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type OrderItemDTO struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Quantity  string  `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderListResponse struct {
	TraceID   string          `json:"traceId"`
	SessionID string          `json:"sessionId"`
	Orders    []OrderResponse `json:"orders"`
}
