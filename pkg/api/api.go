// Package api defines the RPC messages of the yolksters.v1 services.
//
// Messages are plain structs encoded as JSON on the wire. The handlers and
// clients in apiconnect install the matching codec.
package api

// ParsedIngredient is one ingredient line split into its parts.
type ParsedIngredient struct {
	Original string   `json:"original"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
}

// ShoppingListItem is one row of the caller's shopping list.
type ShoppingListItem struct {
	ID        string   `json:"id"`
	Item      string   `json:"item"`
	Quantity  *float64 `json:"quantity"`
	Unit      *string  `json:"unit"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Checked   bool     `json:"checked"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

// CategoryGroup is one aisle section of the list, in display order.
type CategoryGroup struct {
	Category string              `json:"category"`
	Items    []*ShoppingListItem `json:"items"`
}

type AddIngredientsRequest struct {
	Ingredients []string `json:"ingredients"`
}

type AddIngredientsResponse struct {
	// Updated and Inserted count the rows merged and created.
	Updated  int              `json:"updated"`
	Inserted int              `json:"inserted"`
	Groups   []*CategoryGroup `json:"groups"`
}

type ListItemsRequest struct{}

type ListItemsResponse struct {
	Groups       []*CategoryGroup `json:"groups"`
	TotalItems   int              `json:"total_items"`
	CheckedItems int              `json:"checked_items"`
}

type SetItemCheckedRequest struct {
	ItemID  string `json:"item_id"`
	Checked bool   `json:"checked"`
}

type SetItemCheckedResponse struct{}

type SetAllCheckedRequest struct {
	Checked bool `json:"checked"`
}

type SetAllCheckedResponse struct {
	Affected int64 `json:"affected"`
}

type DeleteItemRequest struct {
	ItemID string `json:"item_id"`
}

type DeleteItemResponse struct{}

type DeleteCheckedRequest struct{}

type DeleteCheckedResponse struct {
	Deleted int64 `json:"deleted"`
}

type ParseIngredientsRequest struct {
	Ingredients []string `json:"ingredients"`
}

type ParseIngredientsResponse struct {
	Ingredients []*ParsedIngredient `json:"ingredients"`
}

// Recipe is the structured data found on a recipe page.
type Recipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Servings     *string  `json:"servings"`
	PrepTime     *string  `json:"prep_time"`
	CookTime     *string  `json:"cook_time"`
	TotalTime    *string  `json:"total_time"`
	Image        *string  `json:"image"`
}

type FetchRecipeRequest struct {
	URL string `json:"url"`
}

type FetchRecipeResponse struct {
	Recipe *Recipe `json:"recipe"`
	// Parsed holds Recipe.Ingredients run through the ingredient parser.
	Parsed []*ParsedIngredient `json:"parsed"`
}

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
