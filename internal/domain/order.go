package domain

import "time"

type Order struct {
	ID            uint
	OrderNumber   string
	SessionID     string
	Status        string
	PaymentMethod string
	PaymentStatus string
	TotalPrice    float64
	Transcript    *string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID int
	Name      string
	Quantity  string
	Price     float64
}

const (
	OrderStatusProcessing = "Processing"
	OrderStatusConfirmed  = "Confirmed"
	OrderStatusInTransit  = "In Transit"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

// PaymentStatusFor returns the payment status of a freshly placed order.
// Cash is collected on delivery.
func PaymentStatusFor(method PaymentMethod) string {
	if method == PaymentCash {
		return PaymentStatusPending
	}
	return PaymentStatusPaid
}
