package models

// Recipe is the structured data found on a recipe page.
type Recipe struct {
	// Name defaults to "Untitled Recipe" when the page gives none.
	Name string

	// Ingredients are raw ingredient lines, ready for the ingredient parser.
	Ingredients []string

	// Instructions are the steps in page order.
	Instructions []string

	// Optional fields are nil when the page does not provide them.
	Servings  *string
	PrepTime  *string
	CookTime  *string
	TotalTime *string
	Image     *string
}
