package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingCatalogService,
		ErrMissingCommentService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingCatalogService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingCatalogService.Error(), "catalog service")
}

func TestErrMissingCommentService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingCommentService.Error(), "comment service")
}
