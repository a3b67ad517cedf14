package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/RGianluca98/Stycly/internal/models"
)

// MySQLItemRepository implements ItemRepository on MySQL.
// Reads are non-transactional point reads; stock is not locked.
type MySQLItemRepository struct {
	db *sql.DB
}

// NewMySQLItemRepository creates a MySQL-backed item repository
func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

const itemColumns = `id, owner_id, title, description, destination, category,
	size, age_range, color, item_condition, daily_price, stock, is_public,
	created_at, updated_at`

func (r *MySQLItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

func (r *MySQLItemRepository) GetPublic(ctx context.Context) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE is_public = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query public items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *MySQLItemRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query owner items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *MySQLItemRepository) Create(ctx context.Context, item *models.Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (id, owner_id, title, description, destination, category,
			size, age_range, color, item_condition, daily_price, stock, is_public,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, item.Title, item.Description, item.Destination,
		item.Category, item.Size, item.AgeRange, item.Color, item.Condition,
		item.DailyPrice, item.Stock, item.IsPublic, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *MySQLItemRepository) Update(ctx context.Context, item *models.Item) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE items
		SET title = ?, description = ?, destination = ?, category = ?, size = ?,
			age_range = ?, color = ?, item_condition = ?, daily_price = ?,
			stock = ?, is_public = ?, updated_at = ?
		WHERE id = ?`,
		item.Title, item.Description, item.Destination, item.Category, item.Size,
		item.AgeRange, item.Color, item.Condition, item.DailyPrice,
		item.Stock, item.IsPublic, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *MySQLItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *MySQLItemRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE owner_id = ?`, ownerID)
	if err != nil {
		return fmt.Errorf("delete owner items: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	err := row.Scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Description,
		&item.Destination, &item.Category, &item.Size, &item.AgeRange,
		&item.Color, &item.Condition, &item.DailyPrice, &item.Stock,
		&item.IsPublic, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func collectItems(rows *sql.Rows) ([]models.Item, error) {
	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
