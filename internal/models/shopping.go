package models

// ShoppingListItem is one row of a user's shopping list.
type ShoppingListItem struct {
	// ID is the unique identifier for the row (UUID format), assigned by the store.
	ID string

	// UserID is the owner of the row.
	UserID string

	// Item is the display text, "{quantity} {unit} {name}" with absent parts
	// omitted. Merging re-parses this text rather than trusting the
	// structured fields below.
	Item string

	// Quantity is nil when the ingredient had no readable amount.
	Quantity *float64

	// Unit is the canonical unit label, or nil.
	Unit *string

	// Name is the cleaned ingredient name.
	Name string

	// Category is the grocery category label (e.g., "Produce").
	Category string

	// Checked marks the row as already in the basket.
	Checked bool

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewItem carries the fields of a row that does not exist yet.
// Rows are always created unchecked.
type NewItem struct {
	Item     string
	Quantity *float64
	Unit     *string
	Name     string
	Category string
}
