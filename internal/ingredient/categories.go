package ingredient

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// Category is a grocery aisle used to group shopping-list rows.
type Category string

const (
	CategoryProduce     Category = "Produce"
	CategoryMeatSeafood Category = "Meat & Seafood"
	CategoryDairy       Category = "Dairy"
	CategoryBakery      Category = "Bakery"
	CategoryPantry      Category = "Pantry"
	CategoryFrozen      Category = "Frozen"
	CategoryBeverages   Category = "Beverages"
	CategoryOther       Category = "Other"
)

// categoryOrder is the presentation and classification order. Other is last
// and has no keywords.
var categoryOrder = []Category{
	CategoryProduce,
	CategoryMeatSeafood,
	CategoryDairy,
	CategoryBakery,
	CategoryPantry,
	CategoryFrozen,
	CategoryBeverages,
	CategoryOther,
}

type categoryEntry struct {
	Category Category
	Keywords []string
}

// categoryTable is scanned in order; within a category keywords are scanned in
// order. The first keyword found in a name decides its category, so the order
// of both lists is significant ("black pepper" is Produce because "pepper" is
// listed there before Pantry).
var categoryTable = []categoryEntry{
	{CategoryProduce, []string{
		"lettuce", "spinach", "kale", "arugula", "cabbage", "chard",
		"tomato", "cucumber", "pepper", "bell pepper", "jalapeño", "chili",
		"onion", "garlic", "shallot", "leek", "scallion", "green onion",
		"carrot", "celery", "broccoli", "cauliflower", "zucchini", "squash",
		"potato", "sweet potato", "yam",
		"apple", "banana", "orange", "lemon", "lime", "berry", "strawberry",
		"blueberry", "raspberry", "grape", "melon", "watermelon",
		"avocado", "mushroom", "corn", "peas", "green beans", "asparagus",
		"eggplant", "radish", "beet", "turnip", "parsnip",
		"cilantro", "parsley", "basil", "mint", "thyme", "rosemary", "oregano",
		"dill", "sage", "tarragon", "chives", "ginger", "herbs",
	}},
	{CategoryMeatSeafood, []string{
		"chicken", "beef", "pork", "turkey", "lamb", "duck", "bacon",
		"sausage", "ham", "ground beef", "ground turkey", "ground pork",
		"steak", "roast", "chop", "breast", "thigh", "wing",
		"salmon", "tuna", "cod", "tilapia", "shrimp", "crab", "lobster",
		"clam", "mussel", "oyster", "scallop", "fish", "seafood",
	}},
	{CategoryDairy, []string{
		"milk", "cream", "half and half", "buttermilk", "sour cream",
		"cheese", "cheddar", "mozzarella", "parmesan", "feta", "goat cheese",
		"cream cheese", "ricotta", "cottage cheese",
		"butter", "yogurt", "greek yogurt", "eggs", "egg",
	}},
	{CategoryBakery, []string{
		"bread", "baguette", "roll", "bun", "bagel", "english muffin",
		"tortilla", "pita", "naan", "croissant", "biscuit",
		"cake", "pie", "pastry", "muffin", "donut",
	}},
	{CategoryPantry, []string{
		"flour", "sugar", "brown sugar", "powdered sugar", "salt", "pepper",
		"oil", "olive oil", "vegetable oil", "coconut oil", "sesame oil",
		"vinegar", "balsamic vinegar", "rice vinegar", "apple cider vinegar",
		"soy sauce", "worcestershire", "hot sauce", "ketchup", "mustard",
		"mayonnaise", "honey", "maple syrup", "molasses",
		"rice", "pasta", "noodle", "quinoa", "couscous", "barley",
		"beans", "lentils", "chickpeas", "black beans", "kidney beans",
		"tomato sauce", "tomato paste", "diced tomatoes", "crushed tomatoes",
		"broth", "stock", "bouillon",
		"baking powder", "baking soda", "yeast", "cornstarch", "vanilla",
		"cinnamon", "cumin", "paprika", "chili powder", "garlic powder",
		"onion powder", "cayenne", "turmeric", "curry", "spice", "spices",
		"nuts", "almonds", "walnuts", "pecans", "peanuts", "cashews",
		"chocolate", "cocoa", "chips", "raisins", "dried fruit",
	}},
	{CategoryFrozen, []string{
		"frozen", "ice cream", "frozen vegetables", "frozen fruit",
		"frozen pizza", "frozen dinner", "popsicle",
	}},
	{CategoryBeverages, []string{
		"water", "juice", "soda", "coffee", "tea", "wine", "beer",
		"liquor", "vodka", "rum", "whiskey", "tequila",
	}},
}

type keywordRule struct {
	Category Category
	Words    []string
}

// keywordRules flattens categoryTable into ordered (category, keyword) pairs
// with each keyword already folded into match words.
var keywordRules = func() []keywordRule {
	var rules []keywordRule
	for _, entry := range categoryTable {
		for _, kw := range entry.Keywords {
			rules = append(rules, keywordRule{Category: entry.Category, Words: foldWords(kw)})
		}
	}
	return rules
}()

// Categories returns every category label in presentation order, Other last.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// CategoryRank returns the presentation position of a category label.
// Unknown labels rank with Other.
func CategoryRank(c Category) int {
	for i, known := range categoryOrder {
		if known == c {
			return i
		}
	}
	return len(categoryOrder) - 1
}

// NormalizeCategory maps empty or unknown labels to Other.
func NormalizeCategory(label string) Category {
	c := Category(label)
	for _, known := range categoryOrder {
		if known == c {
			return c
		}
	}
	return CategoryOther
}

// Categorize assigns the category of the first keyword, in table order, that
// appears as a whole-word phrase in name. Words are compared case-insensitively
// and singularized, so "Tomatoes" matches "tomato" but "unicorn" never matches
// "corn".
func Categorize(name string) Category {
	words := foldWords(name)
	if len(words) == 0 {
		return CategoryOther
	}
	for _, rule := range keywordRules {
		if containsPhrase(words, rule.Words) {
			return rule.Category
		}
	}
	return CategoryOther
}

// MatchKey is the comparison key for ingredient names: lower-cased words,
// each singularized, joined by single spaces.
func MatchKey(name string) string {
	return strings.Join(foldWords(name), " ")
}

func foldWords(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, f := range fields {
		fields[i] = inflection.Singular(f)
	}
	return fields
}

func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(words) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(words); i++ {
		for j, p := range phrase {
			if words[i+j] != p {
				continue outer
			}
		}
		return true
	}
	return false
}
