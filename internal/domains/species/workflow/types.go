package workflow

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"species-catalog/internal/domains/species/model"
)

// State of the workflow for one record
type State string

const (
	StateViewing           State = "viewing"
	StateEditing           State = "editing"
	StateSubmitting        State = "submitting"
	StateConfirmingDiscard State = "confirming_discard"
	StateConfirmingDelete  State = "confirming_delete"
	StateDeleting          State = "deleting"
	StateDeleted           State = "deleted"
)

// Prompts shown while a confirmation is pending
const (
	DiscardPrompt = "Remove all changes?"
	DeletePrompt  = "Delete this species?"
)

var (
	ErrInvalidTransition     = errors.New("action not allowed in current state")
	ErrSubmissionInProgress  = errors.New("a submission is already in progress")
	ErrNoPendingConfirmation = errors.New("no confirmation is pending")
)

// Severity of a user-visible notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient user-visible message
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Store is the record store the workflow writes to
type Store interface {
	Update(ctx context.Context, id int64, actor uuid.UUID, fields model.SpeciesFields) error
	Delete(ctx context.Context, id int64, actor uuid.UUID) error
}

// Notifier raises user-visible notifications
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Refresher asks the host to re-fetch authoritative state
type Refresher interface {
	Refresh(ctx context.Context, id int64)
}

// RefresherFunc adapts a function to Refresher
type RefresherFunc func(ctx context.Context, id int64)

func (f RefresherFunc) Refresh(ctx context.Context, id int64) { f(ctx, id) }

// Deps are the collaborators of a Workflow. Notifier and Refresher may be nil.
type Deps struct {
	Store     Store
	Notifier  Notifier
	Refresher Refresher
}

// Prompt is a pending confirmation
type Prompt struct {
	Action  string `json:"action"` // discard, delete
	Message string `json:"message"`
}

// Snapshot is a copy of the workflow state handed to observers and callers
type Snapshot struct {
	RecordID    int64             `json:"record_id"`
	State       State             `json:"state"`
	Record      model.Species     `json:"record"`
	Draft       model.Draft       `json:"draft"`
	FieldErrors model.FieldErrors `json:"field_errors,omitempty"`
	Prompt      *Prompt           `json:"prompt,omitempty"`
	CanEdit     bool              `json:"can_edit"`
}

// Observer is called after every state change, outside the workflow lock
type Observer func(prev State, snap Snapshot)
