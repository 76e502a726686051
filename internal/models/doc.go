// Package models defines the core domain models for the shopping list.
//
// # Models
//
//   - ShoppingListItem: a persisted row owned by one user
//   - NewItem: the fields of a row about to be inserted
//   - User: a registered account
//   - Recipe: structured data extracted from a recipe page
//
// # Design Principles
//
// 1. **Rows reference their owner by ID**: a ShoppingListItem carries UserID,
// users never hold their rows.
// 2. **Nullable numbers are pointers**: a nil Quantity or Unit means the
// ingredient had none, which is different from zero.
// 3. **Display text is authoritative for merging**: Item is re-parsed when new
// ingredients are merged into the list.
package models
