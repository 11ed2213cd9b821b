// internal/store/orders.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"simmer-assistant/internal/common/errors"
	"simmer-assistant/internal/models"
)

// recentOrderLimit caps how far back the assistant looks when a customer asks
// about their orders.
const recentOrderLimit = 5

// RecentOrders returns up to five orders for a phone number, newest first.
func (s *Store) RecentOrders(ctx context.Context, phone string) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_number, phone, location_id, status, total, items, created_at
		FROM orders WHERE phone = $1
		ORDER BY created_at DESC
		LIMIT $2`, phone, recentOrderLimit)
	if err != nil {
		return nil, errors.NewOrderLookupFailedError(phone, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var status string
		var items []byte
		if err := rows.Scan(&order.ID, &order.OrderNumber, &order.Phone, &order.LocationID,
			&status, &order.Total, &items, &order.CreatedAt); err != nil {
			return nil, errors.NewOrderLookupFailedError(phone, err)
		}
		order.Status = models.OrderStatus(status)
		if len(items) > 0 {
			if err := json.Unmarshal(items, &order.Items); err != nil {
				return nil, errors.NewOrderLookupFailedError(phone, err)
			}
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewOrderLookupFailedError(phone, err)
	}
	return orders, nil
}

// OrderByNumber loads one order by its human-readable reference.
func (s *Store) OrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, order_number, phone, location_id, status, total, items, created_at
		FROM orders WHERE order_number = $1`, orderNumber)

	var order models.Order
	var status string
	var items []byte
	err := row.Scan(&order.ID, &order.OrderNumber, &order.Phone, &order.LocationID,
		&status, &order.Total, &items, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewResourceNotFoundError("order", orderNumber)
	}
	if err != nil {
		return nil, errors.NewOrderLookupFailedError("", err)
	}
	order.Status = models.OrderStatus(status)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, errors.NewOrderLookupFailedError("", err)
		}
	}
	return &order, nil
}

// CreateOrder persists a checkout. Missing id, order number, status and
// timestamp are filled in here; the total is recomputed from the lines so a
// tampered client total never reaches the kitchen.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.OrderNumber == "" {
		order.OrderNumber = newOrderNumber(time.Now())
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	var total float64
	for _, line := range order.Items {
		total += line.Price * float64(line.Quantity)
	}
	order.Total = total

	items, err := json.Marshal(order.Items)
	if err != nil {
		return errors.NewOrderCreateFailedError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, phone, location_id, status, total, items, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, order.OrderNumber, order.Phone, order.LocationID,
		string(order.Status), order.Total, items, order.CreatedAt)
	if err != nil {
		return errors.NewOrderCreateFailedError(err)
	}
	return nil
}

// UpdateOrderStatus moves an order through its lifecycle.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return errors.NewAdminUpdateFailedError("order", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewResourceNotFoundError("order", id)
	}
	return nil
}

// newOrderNumber derives a short human-readable reference from the clock.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("SD-%s", now.UTC().Format("060102-150405"))
}
