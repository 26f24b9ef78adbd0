// Package mcp provides an MCP (Model Context Protocol) server adapter for recetasu.
// It lets AI assistants browse, edit and review recipes through the catalog.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")

// ErrCommentsUnavailable is returned by comment tools when no comment service is wired.
var ErrCommentsUnavailable = errors.New("mcp: comments are not available")
