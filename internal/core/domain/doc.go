// Package domain defines the core business entities for RecetasU.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Recipe: A persisted recipe with its single canonical identifier
//   - RecipeDraft: A recipe that has not been persisted yet
//   - Ingredient: A free-form ingredient line
//   - Comment: A review left on a recipe
//   - RecipeFilter: Search term and category used to derive views
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
