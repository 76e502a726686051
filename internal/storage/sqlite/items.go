package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/yolksters/internal/models"
	"github.com/mmynk/yolksters/internal/storage"
)

const itemColumns = "id, user_id, item, quantity, unit, name, category, checked, created_at, updated_at"

// FetchItems returns all of a user's rows, oldest first.
func (s *SQLiteStore) FetchItems(ctx context.Context, userID string) ([]models.ShoppingListItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM shopping_list_items WHERE user_id = ? ORDER BY created_at, rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.ShoppingListItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// UpdateItem writes the merged fields of an existing row.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.ShoppingListItem) error {
	return updateItem(ctx, s.db, item)
}

// InsertItems creates unchecked rows in one transaction.
func (s *SQLiteStore) InsertItems(ctx context.Context, userID string, items []models.NewItem) ([]models.ShoppingListItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := make([]models.ShoppingListItem, 0, len(items))
	for _, n := range items {
		item, err := insertItem(ctx, tx, userID, n)
		if err != nil {
			return nil, err
		}
		created = append(created, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, nil
}

// ApplyChanges stores a reconciliation result atomically.
func (s *SQLiteStore) ApplyChanges(ctx context.Context, userID string, updates []models.ShoppingListItem, inserts []models.NewItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range updates {
		if updates[i].UserID != userID {
			return fmt.Errorf("item %s: %w", updates[i].ID, storage.ErrNotFound)
		}
		if err := updateItem(ctx, tx, &updates[i]); err != nil {
			return err
		}
	}

	for _, n := range inserts {
		if _, err := insertItem(ctx, tx, userID, n); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetChecked sets the checked flag on a single row.
func (s *SQLiteStore) SetChecked(ctx context.Context, userID, itemID string, checked bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE shopping_list_items SET checked = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		checked, time.Now().Unix(), itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set checked: %w", err)
	}
	return requireRow(result, itemID)
}

// BulkSetChecked sets the checked flag on every row the user owns.
func (s *SQLiteStore) BulkSetChecked(ctx context.Context, userID string, checked bool) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE shopping_list_items SET checked = ?, updated_at = ? WHERE user_id = ? AND checked != ?",
		checked, time.Now().Unix(), userID, checked,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to set checked: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

// DeleteItem removes a single row.
func (s *SQLiteStore) DeleteItem(ctx context.Context, userID, itemID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM shopping_list_items WHERE id = ? AND user_id = ?",
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return requireRow(result, itemID)
}

// DeleteChecked removes every checked row the user owns.
func (s *SQLiteStore) DeleteChecked(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM shopping_list_items WHERE user_id = ? AND checked = 1",
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete checked items: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

func updateItem(ctx context.Context, db execer, item *models.ShoppingListItem) error {
	item.UpdatedAt = time.Now().Unix()
	result, err := db.ExecContext(ctx,
		`UPDATE shopping_list_items
		SET item = ?, quantity = ?, unit = ?, name = ?, category = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		item.Item, nullFloat(item.Quantity), nullString(item.Unit), item.Name, item.Category, item.UpdatedAt,
		item.ID, item.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return requireRow(result, item.ID)
}

func insertItem(ctx context.Context, db execer, userID string, n models.NewItem) (models.ShoppingListItem, error) {
	now := time.Now().Unix()
	item := models.ShoppingListItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		Item:      n.Item,
		Quantity:  n.Quantity,
		Unit:      n.Unit,
		Name:      n.Name,
		Category:  n.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO shopping_list_items ("+itemColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		item.ID, item.UserID, item.Item, nullFloat(item.Quantity), nullString(item.Unit),
		item.Name, item.Category, false, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return models.ShoppingListItem{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return item, nil
}

func scanItem(rows *sql.Rows) (models.ShoppingListItem, error) {
	var (
		item     models.ShoppingListItem
		quantity sql.NullFloat64
		unit     sql.NullString
	)
	if err := rows.Scan(
		&item.ID,
		&item.UserID,
		&item.Item,
		&quantity,
		&unit,
		&item.Name,
		&item.Category,
		&item.Checked,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return models.ShoppingListItem{}, fmt.Errorf("failed to scan item: %w", err)
	}
	if quantity.Valid {
		item.Quantity = &quantity.Float64
	}
	if unit.Valid {
		item.Unit = &unit.String
	}
	return item, nil
}

func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
