package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"saajhamandi/internal/domain"
	"saajhamandi/internal/errors"
)

// MemoryOrderRepository stores orders in process memory. It backs the order
// module when no database is configured.
type MemoryOrderRepository struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Order
	nextID   uint
	nextItem uint
	now      func() time.Time
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]*domain.Order),
		now:    time.Now,
	}
}

func (r *MemoryOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.OrderNumber]; exists {
		return errors.NewConflictError(fmt.Sprintf("order %s already exists", order.OrderNumber))
	}

	r.nextID++
	now := r.now()
	order.ID = r.nextID
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		r.nextItem++
		order.Items[i].ID = r.nextItem
		order.Items[i].OrderID = order.ID
	}

	r.orders[order.OrderNumber] = copyOrder(order)
	return nil
}

func (r *MemoryOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderNumber]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNumber))
	}
	return copyOrder(order), nil
}

// FindBySessionID returns the orders placed from one session, newest first.
func (r *MemoryOrderRepository) FindBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []domain.Order{}
	for _, order := range r.orders {
		if order.SessionID == sessionID {
			orders = append(orders, *copyOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}

func copyOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = append([]domain.OrderItem(nil), o.Items...)
	if o.Transcript != nil {
		t := *o.Transcript
		c.Transcript = &t
	}
	return &c
}
