package service

import (
	"context"

	"github.com/google/uuid"

	"species-catalog/internal/domains/species/model"
	"species-catalog/internal/domains/species/workflow"
)

// ServiceInterface is the direct (stateless) species API
type ServiceInterface interface {
	List(ctx context.Context, filter model.SpeciesFilter) ([]model.Species, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Species, error)

	// Create, Update return the field errors together with
	// model.ErrInvalidDraft when the draft fails validation
	Create(ctx context.Context, actor uuid.UUID, draft model.Draft) (*model.Species, model.FieldErrors, error)
	Update(ctx context.Context, id int64, actor uuid.UUID, draft model.Draft) (*model.Species, model.FieldErrors, error)
	Delete(ctx context.Context, id int64, actor uuid.UUID) error
}

// SessionView is what callers of the session API see after every action
type SessionView struct {
	SessionID uuid.UUID `json:"session_id"`
	workflow.Snapshot
	Notifications []workflow.Notification `json:"notifications"`
}

// SessionServiceInterface hosts edit workflows server-side, one per session
type SessionServiceInterface interface {
	Open(ctx context.Context, id int64, actor uuid.UUID) (*SessionView, error)
	Get(sid uuid.UUID, actor uuid.UUID) (*SessionView, error)
	BeginEdit(sid uuid.UUID, actor uuid.UUID) (*SessionView, error)
	SetDraft(sid uuid.UUID, actor uuid.UUID, draft model.Draft) (*SessionView, error)
	Submit(ctx context.Context, sid uuid.UUID, actor uuid.UUID) (*SessionView, error)
	RequestDiscard(sid uuid.UUID, actor uuid.UUID) (*SessionView, error)
	RequestDelete(sid uuid.UUID, actor uuid.UUID) (*SessionView, error)
	Confirm(ctx context.Context, sid uuid.UUID, actor uuid.UUID, accept bool) (*SessionView, error)
	Close(sid uuid.UUID, actor uuid.UUID) error
}
