package domain

import "strings"

// DefaultCategories are the categories offered when creating or editing a recipe.
var DefaultCategories = []string{
	"Desayunos",
	"Almuerzos",
	"Cenas",
	"Snacks",
	"Postres",
	"Bebidas",
	"Pickles",
	"Sopas",
	"Ensaladas",
	"Vegetarianas",
}

// Ingredient is a single ingredient line.
// Quantity and Unit are free-form and never parsed.
type Ingredient struct {
	// Name is the ingredient name (e.g. "maíz").
	Name string `json:"name"`

	// Quantity is the amount as entered (e.g. "200", "1/2").
	Quantity string `json:"quantity"`

	// Unit is the unit as entered (e.g. "g", "tazas").
	Unit string `json:"unit"`
}

// Recipe is a recipe known to the remote catalog.
// A persisted recipe always has a non-zero ID; the remote service is
// the only source of identifiers.
type Recipe struct {
	// ID is the canonical identifier. Zero means not persisted.
	ID int64 `json:"id"`

	// Name is the recipe title.
	Name string `json:"recipeName"`

	// Servings is the number of portions.
	Servings int `json:"servings"`

	// Ingredients are kept in the order they were entered.
	Ingredients []Ingredient `json:"ingredients"`

	// Preparation holds the step-by-step instructions.
	Preparation string `json:"preparation"`

	// PreparationTime is in minutes.
	PreparationTime int `json:"preparationTime"`

	// Category is a free-form category label.
	Category string `json:"category"`
}

// IsPersisted returns true if the recipe carries a remote identifier.
func (r Recipe) IsPersisted() bool {
	return r.ID > 0
}

// Draft returns the recipe without its identifier.
func (r Recipe) Draft() RecipeDraft {
	return RecipeDraft{
		Name:            r.Name,
		Servings:        r.Servings,
		Ingredients:     cloneIngredients(r.Ingredients),
		Preparation:     r.Preparation,
		PreparationTime: r.PreparationTime,
		Category:        r.Category,
	}
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	r.Ingredients = cloneIngredients(r.Ingredients)
	return r
}

// RecipeDraft is a recipe that has not been persisted yet.
type RecipeDraft struct {
	Name            string       `json:"recipeName"`
	Servings        int          `json:"servings"`
	Ingredients     []Ingredient `json:"ingredients"`
	Preparation     string       `json:"preparation"`
	PreparationTime int          `json:"preparationTime"`
	Category        string       `json:"category"`
}

// WithID attaches an identifier to the draft.
func (d RecipeDraft) WithID(id int64) Recipe {
	return Recipe{
		ID:              id,
		Name:            d.Name,
		Servings:        d.Servings,
		Ingredients:     cloneIngredients(d.Ingredients),
		Preparation:     d.Preparation,
		PreparationTime: d.PreparationTime,
		Category:        d.Category,
	}
}

// Validate checks the required fields of a draft.
// Ingredient quantity and unit are optional ("sal", "al gusto").
func (d RecipeDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("name", "recipe name is required")
	}
	if d.Servings < 1 {
		return invalid("servings", "servings must be at least 1")
	}
	if d.PreparationTime < 1 {
		return invalid("preparationTime", "preparation time must be at least 1 minute")
	}
	if len(d.Ingredients) == 0 {
		return invalid("ingredients", "at least one ingredient is required")
	}
	for _, ing := range d.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return invalid("ingredients", "ingredient name is required")
		}
	}
	if strings.TrimSpace(d.Preparation) == "" {
		return invalid("preparation", "preparation is required")
	}
	return nil
}

func cloneIngredients(in []Ingredient) []Ingredient {
	if in == nil {
		return nil
	}
	out := make([]Ingredient, len(in))
	copy(out, in)
	return out
}
