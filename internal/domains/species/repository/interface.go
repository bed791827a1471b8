package repository

import (
	"context"

	"github.com/google/uuid"

	"species-catalog/internal/domains/species/model"
)

// RepositoryInterface is the record store for species
type RepositoryInterface interface {
	// Create inserts a record owned by author
	Create(ctx context.Context, author uuid.UUID, fields model.SpeciesFields) (*model.Species, error)

	// GetByID returns model.ErrSpeciesNotFound if the record does not exist
	GetByID(ctx context.Context, id int64) (*model.Species, error)

	// List returns one page of records plus the total count
	List(ctx context.Context, filter model.SpeciesFilter) ([]model.Species, int64, error)

	// Update overwrites the editable fields of record id.
	// Only the author may update: model.ErrNotPermitted otherwise.
	Update(ctx context.Context, id int64, actor uuid.UUID, fields model.SpeciesFields) (*model.Species, error)

	// Delete removes record id. Same ownership rule as Update.
	Delete(ctx context.Context, id int64, actor uuid.UUID) error

	// InvalidateList drops every cached list page
	InvalidateList(ctx context.Context)
}
