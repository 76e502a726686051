// Package ingredient decomposes free-form ingredient lines such as
// "1 1/2 cups diced tomatoes (drained)" into quantity, unit, name and grocery
// category.
//
// Parsing never fails. Anything that cannot be read as a quantity or unit is
// left in the name, and names that match no keyword are categorized as Other.
package ingredient

import (
	"regexp"
	"strings"
)

// Parsed is the structured form of one ingredient line.
type Parsed struct {
	// Original is the input exactly as given.
	Original string `json:"original"`

	// Quantity is nil when the line has no readable leading number.
	Quantity *float64 `json:"quantity"`

	// Unit is a canonical unit label, or the lower-cased word that followed
	// the quantity when it is not a known unit. Nil when no unit was present.
	Unit *string `json:"unit"`

	// Name is the cleaned ingredient name, possibly empty.
	Name string `json:"name"`

	Category Category `json:"category"`
}

var (
	// quantityRun matches the leading quantity expression: digits, fractions,
	// decimal points, whitespace, range dashes and the standalone word "to".
	quantityRun = regexp.MustCompile(`^(?:[0-9/.\s\-–½¼¾⅓⅔⅛⅜⅝⅞]|(?i:\bto\b))+`)

	unitToken     = regexp.MustCompile(`^[A-Za-z.]+`)
	leadingFiller = regexp.MustCompile(`(?i)^(?:of\b|,|-)\s*`)
	parenthetical = regexp.MustCompile(`\(.*?\)`)
)

// Parse decomposes a raw ingredient line.
func Parse(text string) Parsed {
	result := Parsed{Original: text, Category: CategoryOther}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return result
	}

	name := trimmed
	if run := quantityRun.FindString(trimmed); run != "" && hasQuantityMarker(run) {
		result.Quantity = ParseQuantity(run)
		// Asides such as "(15 oz)" are dropped before looking for the unit so
		// "2 (15 oz) cans beans" reads the same as "2 cans beans".
		rest := strings.TrimSpace(parenthetical.ReplaceAllString(trimmed[len(run):], ""))
		name = rest
		// A unit without a quantity would not survive rendering and
		// re-parsing, so it stays in the name.
		if unit, n, ok := matchUnit(rest); ok && result.Quantity != nil {
			result.Unit = &unit
			name = rest[n:]
		}
	}

	result.Name = cleanName(name)
	result.Category = Categorize(result.Name)
	return result
}

// Item renders the display text used for shopping-list rows:
// "{quantity} {unit} {name}" with absent parts omitted.
func (p Parsed) Item() string {
	return FormatItem(p.Quantity, p.Unit, p.Name)
}

// FormatItem joins the present parts of an ingredient into display text.
func FormatItem(quantity *float64, unit *string, name string) string {
	parts := make([]string, 0, 3)
	if quantity != nil {
		parts = append(parts, FormatQuantity(*quantity))
	}
	if unit != nil && *unit != "" {
		parts = append(parts, *unit)
	}
	if name != "" {
		parts = append(parts, name)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// SameUnit reports whether two optional units are identical, treating two nils
// as equal.
func SameUnit(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// matchUnit looks for a unit at the start of rest and returns its label and
// the number of bytes it spans.
//
// Known units always match. An unknown word is taken as a unit only when it is
// followed by whitespace and more name text, so "2 large eggs" has unit
// "large" while "1 onion" and "1 onion, chopped" have no unit.
func matchUnit(rest string) (string, int, bool) {
	if canonical, n, ok := matchMultiWordUnit(rest); ok {
		return canonical, n, true
	}

	token := unitToken.FindString(rest)
	if token == "" {
		return "", 0, false
	}

	label, known := NormalizeUnit(token)
	if known {
		return label, len(token), true
	}

	after := rest[len(token):]
	if after == "" || !startsWithSpace(after) || cleanName(after) == "" {
		return "", 0, false
	}
	return label, len(token), true
}

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFiller.ReplaceAllString(s, "")
	s = parenthetical.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func hasQuantityMarker(run string) bool {
	return strings.ContainsFunc(run, func(r rune) bool {
		return (r >= '0' && r <= '9') || r == '/' || isVulgarFraction(r)
	})
}

func startsWithSpace(s string) bool {
	return s != "" && (s[0] == ' ' || s[0] == '\t')
}
