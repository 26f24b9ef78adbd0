package domain

import (
	"sort"
	"strings"
)

// RecipeFilter narrows a recipe list by search term and category.
// The zero value matches everything.
type RecipeFilter struct {
	// Term is matched case-insensitively against the recipe name
	// and every ingredient name.
	Term string

	// Category must match exactly when set.
	Category string
}

// IsActive returns true if the filter narrows anything.
func (f RecipeFilter) IsActive() bool {
	return f.Term != "" || f.Category != ""
}

// Matches reports whether a recipe passes the filter.
func (f RecipeFilter) Matches(r Recipe) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	term := strings.ToLower(f.Term)
	if strings.Contains(strings.ToLower(r.Name), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), term) {
			return true
		}
	}
	return false
}

// Apply returns the recipes that pass the filter, in list order.
func (f RecipeFilter) Apply(recipes []Recipe) []Recipe {
	result := make([]Recipe, 0, len(recipes))
	for i := range recipes {
		if f.Matches(recipes[i]) {
			result = append(result, recipes[i])
		}
	}
	return result
}

// Categories returns the sorted set of distinct non-empty categories.
func Categories(recipes []Recipe) []string {
	seen := make(map[string]bool)
	cats := make([]string, 0)
	for i := range recipes {
		c := recipes[i].Category
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
