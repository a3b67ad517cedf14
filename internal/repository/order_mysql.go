package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/RGianluca98/Stycly/internal/models"
)

// MySQLOrderRepository implements OrderRepository on MySQL. The order row
// and its line items commit in one transaction or not at all.
type MySQLOrderRepository struct {
	db *sql.DB
}

// NewMySQLOrderRepository creates a MySQL-backed order repository
func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	userID := sql.NullString{String: order.UserID, Valid: order.UserID != ""}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, name, email, phone, notes,
			start_date, end_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, userID, order.Name, order.Email, order.Phone, order.Notes,
		order.StartDate, order.EndDate, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_id, title, size, age_range,
				quantity, daily_price)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			order.ID, item.ItemID, item.Title, item.Size, item.AgeRange,
			item.Quantity, item.DailyPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *MySQLOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var (
		order  models.Order
		userID sql.NullString
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, email, phone, notes, start_date, end_date,
			status, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(
		&order.ID, &userID, &order.Name, &order.Email, &order.Phone,
		&order.Notes, &order.StartDate, &order.EndDate, &order.Status,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	order.UserID = userID.String

	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, title, size, age_range, quantity, daily_price
		FROM order_items WHERE order_id = ? ORDER BY item_id`, id)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	order.Items = make([]models.OrderItem, 0)
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ItemID, &item.Title, &item.Size,
			&item.AgeRange, &item.Quantity, &item.DailyPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return &order, nil
}
