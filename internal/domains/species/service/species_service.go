package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"species-catalog/internal/domains/species/model"
	"species-catalog/internal/domains/species/repository"
	"species-catalog/internal/infrastructure/metrics"
)

// speciesService implements ServiceInterface
type speciesService struct {
	repo    repository.RepositoryInterface
	metrics *metrics.Metrics
}

// NewSpeciesService creates the species service. m may be nil.
func NewSpeciesService(repo repository.RepositoryInterface, m *metrics.Metrics) ServiceInterface {
	return &speciesService{
		repo:    repo,
		metrics: m,
	}
}

func (s *speciesService) List(ctx context.Context, filter model.SpeciesFilter) ([]model.Species, int64, error) {
	filter.SetDefaults()
	if err := filter.Validate(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", model.ErrInvalidFilter, err)
	}
	return s.repo.List(ctx, filter)
}

func (s *speciesService) GetByID(ctx context.Context, id int64) (*model.Species, error) {
	if id <= 0 {
		return nil, model.ErrSpeciesNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *speciesService) Create(ctx context.Context, actor uuid.UUID, draft model.Draft) (*model.Species, model.FieldErrors, error) {
	if actor == uuid.Nil {
		return nil, nil, model.ErrNotPermitted
	}

	fields, errs := model.ValidateDraft(draft)
	if errs != nil {
		s.metrics.RecordMutation("create", "invalid")
		return nil, errs, model.ErrInvalidDraft
	}

	created, err := s.repo.Create(ctx, actor, fields)
	s.metrics.RecordMutation("create", outcome(err))
	if err != nil {
		return nil, nil, err
	}

	log.Info().Int64("species_id", created.ID).Str("author", actor.String()).Msg("species created")
	return created, nil, nil
}

// Update checks ownership before touching the store; the store checks again
func (s *speciesService) Update(ctx context.Context, id int64, actor uuid.UUID, draft model.Draft) (*model.Species, model.FieldErrors, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		s.metrics.RecordMutation("update", outcome(err))
		return nil, nil, err
	}
	if !current.IsOwnedBy(actor) {
		s.metrics.RecordMutation("update", outcome(model.ErrNotPermitted))
		return nil, nil, model.ErrNotPermitted
	}

	fields, errs := model.ValidateDraft(draft)
	if errs != nil {
		s.metrics.RecordMutation("update", "invalid")
		return nil, errs, model.ErrInvalidDraft
	}

	updated, err := s.repo.Update(ctx, id, actor, fields)
	s.metrics.RecordMutation("update", outcome(err))
	if err != nil {
		return nil, nil, err
	}

	log.Info().Int64("species_id", id).Str("author", actor.String()).Msg("species updated")
	return updated, nil, nil
}

func (s *speciesService) Delete(ctx context.Context, id int64, actor uuid.UUID) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		s.metrics.RecordMutation("delete", outcome(err))
		return err
	}
	if !current.IsOwnedBy(actor) {
		s.metrics.RecordMutation("delete", outcome(model.ErrNotPermitted))
		return model.ErrNotPermitted
	}

	err = s.repo.Delete(ctx, id, actor)
	s.metrics.RecordMutation("delete", outcome(err))
	if err != nil {
		return err
	}

	log.Info().Int64("species_id", id).Str("author", actor.String()).Msg("species deleted")
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrInvalidDraft):
		return "invalid"
	case errors.Is(err, model.ErrNotPermitted):
		return "forbidden"
	case errors.Is(err, model.ErrSpeciesNotFound):
		return "not_found"
	default:
		return "error"
	}
}
