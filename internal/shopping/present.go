package shopping

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mmynk/yolksters/internal/ingredient"
	"github.com/mmynk/yolksters/internal/models"
)

// Group is one category section of the shopping list.
type Group struct {
	Category ingredient.Category
	Items    []models.ShoppingListItem
}

// GroupByCategory buckets rows by their stored category and returns the
// non-empty buckets in aisle order (Produce first, Other last). Rows with an
// empty or unknown category go to Other. Within a bucket rows are sorted by
// name with English collation, then by ID.
func GroupByCategory(items []models.ShoppingListItem) []Group {
	buckets := make(map[ingredient.Category][]models.ShoppingListItem)
	for _, item := range items {
		c := ingredient.NormalizeCategory(item.Category)
		buckets[c] = append(buckets[c], item)
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(language.English)

	groups := make([]Group, 0, len(buckets))
	for _, c := range ingredient.Categories() {
		rows, ok := buckets[c]
		if !ok {
			continue
		}
		sort.SliceStable(rows, func(i, j int) bool {
			if cmp := col.CompareString(rows[i].Name, rows[j].Name); cmp != 0 {
				return cmp < 0
			}
			return rows[i].ID < rows[j].ID
		})
		groups = append(groups, Group{Category: c, Items: rows})
	}
	return groups
}
