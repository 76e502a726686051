// Package recipe fetches recipe pages and extracts their schema.org Recipe
// data from JSON-LD script blocks.
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mmynk/yolksters/internal/models"
)

// UntitledRecipe is the name used when a recipe node has none.
const UntitledRecipe = "Untitled Recipe"

// ErrRecipeNotFound is returned when a page has no JSON-LD Recipe node.
var ErrRecipeNotFound = errors.New("no recipe data found on page")

// Extract scans every application/ld+json script in an HTML document and
// returns the first node typed Recipe. Blocks that are not valid JSON are
// skipped. A block may hold a single node, an array of nodes, or a node with
// an @graph array.
func Extract(r io.Reader) (*models.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &data); err != nil {
			return true
		}
		for _, node := range flattenNodes(data) {
			if isRecipe(node) {
				found = node
				return false
			}
		}
		return true
	})

	if found == nil {
		return nil, ErrRecipeNotFound
	}
	return toRecipe(found), nil
}

// flattenNodes expands top-level arrays and @graph containers into a flat
// list of objects.
func flattenNodes(data any) []map[string]any {
	var items []any
	if arr, ok := data.([]any); ok {
		items = arr
	} else {
		items = []any{data}
	}

	var nodes []map[string]any
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if graph, ok := obj["@graph"].([]any); ok {
			for _, g := range graph {
				if node, ok := g.(map[string]any); ok {
					nodes = append(nodes, node)
				}
			}
			continue
		}
		nodes = append(nodes, obj)
	}
	return nodes
}

// isRecipe accepts "@type": "Recipe" and "@type": [..., "Recipe", ...].
func isRecipe(node map[string]any) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == "Recipe"
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func toRecipe(node map[string]any) *models.Recipe {
	name, _ := node["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		name = UntitledRecipe
	}

	return &models.Recipe{
		Name:         name,
		Ingredients:  ingredients(node["recipeIngredient"]),
		Instructions: instructions(node["recipeInstructions"]),
		Servings:     scalar(first(node["recipeYield"])),
		PrepTime:     scalar(node["prepTime"]),
		CookTime:     scalar(node["cookTime"]),
		TotalTime:    scalar(node["totalTime"]),
		Image:        image(node["image"]),
	}
}

func ingredients(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// instructions accepts a string, a single step object, or an array of
// strings, HowToStep objects and HowToSection objects.
func instructions(v any) []string {
	out := []string{}
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	switch t := v.(type) {
	case string:
		add(t)
	case map[string]any:
		if text, ok := t["text"].(string); ok {
			add(text)
		}
	case []any:
		for _, item := range t {
			switch step := item.(type) {
			case string:
				add(step)
			case map[string]any:
				if text, ok := step["text"].(string); ok && text != "" {
					add(text)
					continue
				}
				if step["@type"] == "HowToSection" {
					elements, _ := step["itemListElement"].([]any)
					for _, el := range elements {
						if sub, ok := el.(map[string]any); ok {
							if text, ok := sub["text"].(string); ok {
								add(text)
							}
						}
					}
				}
			}
		}
	}
	return out
}

// image accepts a URL string, an ImageObject, or an array of either.
func image(v any) *string {
	switch t := first(v).(type) {
	case string:
		return scalar(t)
	case map[string]any:
		return scalar(t["url"])
	}
	return nil
}

// first returns the first element of an array, or v itself.
func first(v any) any {
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return nil
		}
		return arr[0]
	}
	return v
}

// scalar renders a JSON string or number. Anything else, and blank strings,
// are nil.
func scalar(v any) *string {
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}
