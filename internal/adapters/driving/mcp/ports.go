package mcp

import (
	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog owns the recipe collection.
	Catalog driving.CatalogService

	// Comments stores recipe reviews. Optional.
	Comments driving.CommentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
