// Package tui provides an interactive terminal user interface for recetasu.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog owns the recipe collection.
	Catalog driving.CatalogService

	// Comments stores and summarises recipe reviews.
	Comments driving.CommentService

	// Settings is optional; the landing view shows the API URL when set.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(catalog driving.CatalogService, comments driving.CommentService) *Ports {
	return &Ports{
		Catalog:  catalog,
		Comments: comments,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Comments == nil {
		return ErrMissingCommentService
	}
	return nil
}
