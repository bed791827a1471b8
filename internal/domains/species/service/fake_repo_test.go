package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"species-catalog/internal/domains/species/model"
)

// fakeRepo is an in-memory RepositoryInterface with the same ownership rules
// as the postgres implementation
type fakeRepo struct {
	mu          sync.Mutex
	nextID      int64
	records     map[int64]model.Species
	updateErr   error
	updates     int
	deletes     int
	invalidates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, records: map[int64]model.Species{}}
}

func (r *fakeRepo) seed(author uuid.UUID, name string) model.Species {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := model.Species{
		ID:             r.nextID,
		ScientificName: name,
		Kingdom:        model.KingdomAnimalia,
		Author:         author,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	r.records[s.ID] = s
	r.nextID++
	return s
}

func (r *fakeRepo) Create(ctx context.Context, author uuid.UUID, f model.SpeciesFields) (*model.Species, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := model.Species{ID: r.nextID, Author: author}
	s.Apply(f)
	r.records[s.ID] = s
	r.nextID++
	return &s, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*model.Species, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.records[id]
	if !ok {
		return nil, model.ErrSpeciesNotFound
	}
	return &s, nil
}

func (r *fakeRepo) List(ctx context.Context, filter model.SpeciesFilter) ([]model.Species, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Species
	for _, s := range r.records {
		if filter.Kingdom == "" || s.Kingdom == filter.Kingdom {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) Update(ctx context.Context, id int64, actor uuid.UUID, f model.SpeciesFields) (*model.Species, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	s, ok := r.records[id]
	if !ok {
		return nil, model.ErrSpeciesNotFound
	}
	if s.Author != actor {
		return nil, model.ErrNotPermitted
	}
	s.Apply(f)
	r.records[id] = s
	return &s, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64, actor uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	s, ok := r.records[id]
	if !ok {
		return model.ErrSpeciesNotFound
	}
	if s.Author != actor {
		return model.ErrNotPermitted
	}
	delete(r.records, id)
	return nil
}

func (r *fakeRepo) InvalidateList(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidates++
}
