// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/yolksters/internal/models"
)

// ErrNotFound is returned when a row does not exist or belongs to another user.
var ErrNotFound = errors.New("not found")

// Store defines the interface for shopping list and user storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Every item operation is scoped by user ID.
type Store interface {
	// FetchItems returns all rows owned by the user in insertion order.
	FetchItems(ctx context.Context, userID string) ([]models.ShoppingListItem, error)

	// UpdateItem overwrites the item text, quantity, unit, name and category
	// of an existing row. The checked flag is left alone.
	UpdateItem(ctx context.Context, item *models.ShoppingListItem) error

	// InsertItems creates unchecked rows and returns them with assigned IDs.
	InsertItems(ctx context.Context, userID string, items []models.NewItem) ([]models.ShoppingListItem, error)

	// ApplyChanges performs the updates and inserts of one reconciliation in
	// a single transaction. Either all of them are stored or none.
	ApplyChanges(ctx context.Context, userID string, updates []models.ShoppingListItem, inserts []models.NewItem) error

	// SetChecked sets the checked flag of one row.
	SetChecked(ctx context.Context, userID, itemID string, checked bool) error

	// BulkSetChecked sets the checked flag on all of a user's rows and
	// returns how many rows changed.
	BulkSetChecked(ctx context.Context, userID string, checked bool) (int64, error)

	// DeleteItem removes one row.
	DeleteItem(ctx context.Context, userID, itemID string) error

	// DeleteChecked removes all checked rows and returns how many were removed.
	DeleteChecked(ctx context.Context, userID string) (int64, error)

	// CreateUser persists a new user. The email must be unique.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil and no error if no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil and no error if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
