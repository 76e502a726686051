package ingredient

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// rangeSeparator splits "1-2", "1–2" and "1 to 2".
	rangeSeparator = regexp.MustCompile(`(?i)\s*(?:[-–]+|\bto\b)\s*`)
	mixedNumber    = regexp.MustCompile(`^(\d+)\s+(\d+\s*/\s*\d+)`)
	decimalPrefix  = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)`)
	spaceRun       = regexp.MustCompile(`\s+`)
)

// vulgarFractions are rewritten to ASCII before parsing.
var vulgarFractions = map[rune]string{
	'½': "1/2",
	'¼': "1/4",
	'¾': "3/4",
	'⅓': "1/3",
	'⅔': "2/3",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
}

// ParseQuantity converts a quantity expression such as "2", "1.5", "3/4",
// "1 1/2", "½" or "2-3" into a number. Ranges yield their lower bound.
// It returns nil when no number can be read; it never returns NaN or Inf.
func ParseQuantity(text string) *float64 {
	s := strings.TrimSpace(expandVulgarFractions(text))
	if s == "" {
		return nil
	}

	if isRange(s) {
		for _, segment := range rangeSeparator.Split(s, -1) {
			if strings.TrimSpace(segment) == "" {
				continue
			}
			return parseAmount(segment)
		}
		return nil
	}

	return parseAmount(s)
}

func isRange(s string) bool {
	return strings.ContainsAny(s, "-–") || rangeSeparator.MatchString(s)
}

// parseAmount reads a single mixed number, fraction or decimal.
func parseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	if m := mixedNumber.FindStringSubmatch(s); m != nil {
		whole := parseDecimal(m[1])
		frac := parseFraction(m[2])
		if whole == nil || frac == nil {
			return nil
		}
		return finite(*whole + *frac)
	}
	if strings.Contains(s, "/") {
		return parseFraction(s)
	}
	return parseDecimal(s)
}

func parseFraction(s string) *float64 {
	num, denom, ok := strings.Cut(s, "/")
	if !ok {
		return parseDecimal(s)
	}
	n := parseDecimal(num)
	d := parseDecimal(denom)
	if n == nil || d == nil || *d == 0 {
		return nil
	}
	return finite(*n / *d)
}

// parseDecimal reads the longest leading decimal number of s.
func parseDecimal(s string) *float64 {
	prefix := decimalPrefix.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return nil
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return nil
	}
	return finite(v)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// expandVulgarFractions rewrites "1½" as "1 1/2".
func expandVulgarFractions(s string) string {
	if !strings.ContainsFunc(s, isVulgarFraction) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if frac, ok := vulgarFractions[r]; ok {
			b.WriteString(" " + frac + " ")
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(spaceRun.ReplaceAllString(b.String(), " "))
}

func isVulgarFraction(r rune) bool {
	_, ok := vulgarFractions[r]
	return ok
}

// FormatQuantity renders a quantity with the shortest decimal form that
// parses back to the same value ("3", "1.5", "0.25").
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
