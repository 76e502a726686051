// Package shopping merges newly parsed ingredients into a user's shopping list
// and groups the list by grocery category for display.
//
// Everything here is a pure function of its inputs. Callers are responsible
// for reading a consistent snapshot of the list and writing the result back.
package shopping

import (
	"math"
	"strings"

	"github.com/mmynk/yolksters/internal/ingredient"
	"github.com/mmynk/yolksters/internal/models"
)

// quantityPrecision is the number of decimal places kept when quantities are
// added together.
const quantityPrecision = 1e6

// Plan is the outcome of reconciling new ingredients with an existing list.
type Plan struct {
	// Updates are existing rows with their merged quantity, unit, name,
	// category and display text. Each row appears at most once.
	Updates []models.ShoppingListItem

	// Inserts are ingredients that matched no row or could not be merged.
	Inserts []models.NewItem
}

// Items returns the updated rows followed by the inserts as unsaved rows,
// which is what the list will hold for the affected ingredients once the
// plan is stored. Inserts have no ID or owner.
func (p Plan) Items() []models.ShoppingListItem {
	items := make([]models.ShoppingListItem, 0, len(p.Updates)+len(p.Inserts))
	items = append(items, p.Updates...)
	for _, n := range p.Inserts {
		items = append(items, models.ShoppingListItem{
			Item:     n.Item,
			Quantity: n.Quantity,
			Unit:     n.Unit,
			Name:     n.Name,
			Category: n.Category,
		})
	}
	return items
}

// Reconcile decides, for each new ingredient line, whether it merges into an
// existing row or becomes a new one.
//
// Existing rows are compared by re-parsing their Item text. A new ingredient
// matches the first row, in the given order, with the same name key (case and
// plural insensitive) and the identical unit (both nil counts as identical).
// A match merges only if both sides have a quantity; the quantities are added
// and the row takes the new ingredient's name and category. Otherwise the
// ingredient is inserted.
//
// New ingredients sharing a name key and unit are summed together before
// matching when both carry a quantity, so a batch never updates the same row
// twice. Lines without a quantity are never summed: repeating "salt" inserts
// it twice, just as adding "salt" to a list that has it does. Blank lines are
// ignored.
func Reconcile(existing []models.ShoppingListItem, ingredients []string) Plan {
	return ReconcileParsed(existing, ParseLines(ingredients))
}

// ReconcileParsed is Reconcile for lines the caller has already parsed with
// ParseLines or ingredient.Parse.
func ReconcileParsed(existing []models.ShoppingListItem, incoming []ingredient.Parsed) Plan {
	existingParsed := make([]ingredient.Parsed, len(existing))
	existingKeys := make([]string, len(existing))
	for i, item := range existing {
		existingParsed[i] = ingredient.Parse(item.Item)
		existingKeys[i] = ingredient.MatchKey(existingParsed[i].Name)
	}

	var plan Plan
	for _, in := range combineIncoming(incoming) {
		idx := findMatch(existingParsed, existingKeys, in)
		if idx >= 0 && existingParsed[idx].Quantity != nil && in.Quantity != nil {
			total := roundQuantity(*existingParsed[idx].Quantity + *in.Quantity)
			row := existing[idx]
			row.Quantity = &total
			row.Unit = cloneString(in.Unit)
			row.Name = in.Name
			row.Category = string(in.Category)
			row.Item = ingredient.FormatItem(row.Quantity, row.Unit, row.Name)
			plan.Updates = append(plan.Updates, row)
			continue
		}
		plan.Inserts = append(plan.Inserts, toNewItem(in))
	}
	return plan
}

// ParseLines parses every non-blank line in order.
func ParseLines(lines []string) []ingredient.Parsed {
	parsed := make([]ingredient.Parsed, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parsed = append(parsed, ingredient.Parse(line))
	}
	return parsed
}

// combineIncoming sums ingredients with the same name key and unit when both
// carry a quantity. The later ingredient's name and category win. Lines
// without a quantity pass through unchanged, duplicates included.
func combineIncoming(parsed []ingredient.Parsed) []ingredient.Parsed {
	out := make([]ingredient.Parsed, 0, len(parsed))
	for _, p := range parsed {
		if p.Quantity != nil {
			if j := findCombinable(out, p); j >= 0 {
				sum := roundQuantity(*out[j].Quantity + *p.Quantity)
				out[j].Quantity = &sum
				out[j].Name = p.Name
				out[j].Category = p.Category
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func findCombinable(batch []ingredient.Parsed, p ingredient.Parsed) int {
	key := ingredient.MatchKey(p.Name)
	for i, candidate := range batch {
		if candidate.Quantity == nil {
			continue
		}
		if ingredient.SameUnit(candidate.Unit, p.Unit) && ingredient.MatchKey(candidate.Name) == key {
			return i
		}
	}
	return -1
}

func findMatch(rows []ingredient.Parsed, keys []string, p ingredient.Parsed) int {
	key := ingredient.MatchKey(p.Name)
	for i := range rows {
		if keys[i] == key && ingredient.SameUnit(rows[i].Unit, p.Unit) {
			return i
		}
	}
	return -1
}

func toNewItem(p ingredient.Parsed) models.NewItem {
	return models.NewItem{
		Item:     p.Item(),
		Quantity: p.Quantity,
		Unit:     cloneString(p.Unit),
		Name:     p.Name,
		Category: string(p.Category),
	}
}

func roundQuantity(v float64) float64 {
	return math.Round(v*quantityPrecision) / quantityPrecision
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
