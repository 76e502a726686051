package ingredient

import (
	"sort"
	"strings"
)

// unitEntry maps a canonical unit label to the spellings recognized for it.
type unitEntry struct {
	Canonical string
	Variants  []string
}

// unitTable lists recognized units. Lookup is a linear scan in this order and
// the first entry containing a variant wins.
var unitTable = []unitEntry{
	// Volume
	{"cup", []string{"cup", "cups", "c"}},
	{"tablespoon", []string{"tablespoon", "tablespoons", "tbsp", "tbs", "tb"}},
	{"teaspoon", []string{"teaspoon", "teaspoons", "tsp", "ts"}},
	{"fluid ounce", []string{"fluid ounce", "fluid ounces", "fl oz", "fl. oz."}},
	{"pint", []string{"pint", "pints", "pt"}},
	{"quart", []string{"quart", "quarts", "qt"}},
	{"gallon", []string{"gallon", "gallons", "gal"}},
	{"milliliter", []string{"milliliter", "milliliters", "ml"}},
	{"liter", []string{"liter", "liters", "l"}},

	// Weight
	{"pound", []string{"pound", "pounds", "lb", "lbs"}},
	{"ounce", []string{"ounce", "ounces", "oz"}},
	{"gram", []string{"gram", "grams", "g"}},
	{"kilogram", []string{"kilogram", "kilograms", "kg"}},

	// Count
	{"piece", []string{"piece", "pieces", "pc"}},
	{"slice", []string{"slice", "slices"}},
	{"clove", []string{"clove", "cloves"}},
	{"stalk", []string{"stalk", "stalks"}},
	{"can", []string{"can", "cans"}},
	{"jar", []string{"jar", "jars"}},
	{"package", []string{"package", "packages", "pkg"}},
	{"bunch", []string{"bunch", "bunches"}},
	{"head", []string{"head", "heads"}},
}

// multiWordVariants holds every variant containing a space, longest first, so
// that "fluid ounces" is tried before "fluid ounce".
var multiWordVariants = func() []string {
	var out []string
	for _, u := range unitTable {
		for _, v := range u.Variants {
			if strings.Contains(v, " ") {
				out = append(out, v)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// Units returns the canonical unit labels in declaration order.
func Units() []string {
	out := make([]string, len(unitTable))
	for i, u := range unitTable {
		out[i] = u.Canonical
	}
	return out
}

// lookupUnit returns the canonical label for an exact (case-insensitive)
// variant match.
func lookupUnit(token string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if normalized == "" {
		return "", false
	}
	for _, u := range unitTable {
		for _, v := range u.Variants {
			if v == normalized {
				return u.Canonical, true
			}
		}
	}
	return "", false
}

// NormalizeUnit maps a unit spelling to its canonical label. A trailing
// period is tolerated ("tbsp."). Unrecognized tokens come back lower-cased.
// The second result reports whether the token was recognized.
func NormalizeUnit(token string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if canonical, ok := lookupUnit(normalized); ok {
		return canonical, true
	}
	if trimmed := strings.TrimRight(normalized, "."); trimmed != normalized {
		if canonical, ok := lookupUnit(trimmed); ok {
			return canonical, true
		}
	}
	return normalized, false
}

// matchMultiWordUnit reports the length of a multi-word unit variant at the
// start of s, if one is present and ends on a word boundary.
func matchMultiWordUnit(s string) (canonical string, n int, ok bool) {
	lower := strings.ToLower(s)
	for _, v := range multiWordVariants {
		if !strings.HasPrefix(lower, v) {
			continue
		}
		if len(lower) > len(v) && isLetter(lower[len(v)]) {
			continue
		}
		canonical, _ = lookupUnit(v)
		return canonical, len(v), true
	}
	return "", 0, false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
