package repository

import (
	"context"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

// ContactRepository owns reads and writes of the soft-singleton contact
// numbers record.
type ContactRepository interface {
	// GetOrCreateDefault returns the most recently created record, seeding
	// one with the hardcoded defaults when the table is empty.
	GetOrCreateDefault(ctx context.Context) (*domain.ContactNumbers, error)

	// ApplyUpdate persists only the supplied fields and returns the
	// post-update record. Field values are format-checked again here as a
	// second line of defense; violations surface as *ValidationError.
	ApplyUpdate(ctx context.Context, id string, fields map[string]string) (*domain.ContactNumbers, error)

	// ResetToDefaults overwrites all four fields with the hardcoded defaults.
	// The record is never hard-deleted.
	ResetToDefaults(ctx context.Context, id string) (*domain.ContactNumbers, error)
}
