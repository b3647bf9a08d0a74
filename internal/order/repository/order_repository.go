package repository

import (
	"context"
	"database/sql"
	"fmt"

	"saajhamandi/internal/domain"
	"saajhamandi/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order *domain.Order) (uint, error) {
	query := `
		INSERT INTO Orders (orderNumber, sessionId, status, paymentMethod, paymentStatus, totalPrice, transcript)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		order.OrderNumber, order.SessionID, order.Status, order.PaymentMethod,
		order.PaymentStatus, order.TotalPrice, order.Transcript,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// FindByOrderNumber loads the order header. Items are loaded separately.
func (r *MySQLOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `
		SELECT id, orderNumber, sessionId, status, paymentMethod, paymentStatus,
		       totalPrice, transcript, createdAt, updatedAt
		FROM Orders
		WHERE orderNumber = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&order.ID, &order.OrderNumber, &order.SessionID, &order.Status, &order.PaymentMethod,
		&order.PaymentStatus, &order.TotalPrice, &order.Transcript,
		&order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNumber))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by number: %w", err)
	}

	return &order, nil
}

// FindBySessionID loads the order headers placed from one voice session,
// newest first.
func (r *MySQLOrderRepository) FindBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error) {
	query := `
		SELECT id, orderNumber, sessionId, status, paymentMethod, paymentStatus,
		       totalPrice, transcript, createdAt, updatedAt
		FROM Orders
		WHERE sessionId = ?
		ORDER BY createdAt DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying orders by session: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.OrderNumber, &order.SessionID, &order.Status, &order.PaymentMethod,
			&order.PaymentStatus, &order.TotalPrice, &order.Transcript,
			&order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, nil
}
