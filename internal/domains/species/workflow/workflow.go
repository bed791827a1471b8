// Package workflow drives the view/edit/delete lifecycle of one species record.
//
// A Workflow owns one draft for one (record, actor) pair. Confirmations are
// explicit states rather than blocking prompts, and the only suspension
// points are the store calls made from Submit and Confirm. While a store
// call is in flight the workflow sits in Submitting or Deleting and rejects
// further submissions.
package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"species-catalog/internal/domains/species/model"
)

type Workflow struct {
	mu sync.Mutex

	record model.Species
	actor  uuid.UUID

	state       State
	resume      State // state restored when a confirmation is declined
	draft       model.Draft
	fieldErrors model.FieldErrors

	deps      Deps
	observers []Observer
}

// New creates a workflow in Viewing for record as seen by actor
func New(record model.Species, actor uuid.UUID, deps Deps) *Workflow {
	return &Workflow{
		record: record,
		actor:  actor,
		state:  StateViewing,
		draft:  model.DraftFrom(&record),
		deps:   deps,
	}
}

// Subscribe registers an observer for state changes
func (w *Workflow) Subscribe(o Observer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, o)
}

// Snapshot returns the current state
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// State returns the current state
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// CanEdit reports whether the actor owns the record
func (w *Workflow) CanEdit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.record.IsOwnedBy(w.actor)
}

// ========================================
// EDITING
// ========================================

// BeginEdit copies the authoritative record into the draft and enters Editing
func (w *Workflow) BeginEdit() error {
	w.mu.Lock()
	if !w.record.IsOwnedBy(w.actor) {
		w.mu.Unlock()
		return model.ErrNotPermitted
	}
	if w.state != StateViewing {
		w.mu.Unlock()
		return ErrInvalidTransition
	}

	prev := w.state
	w.draft = model.DraftFrom(&w.record)
	w.fieldErrors = nil
	w.state = StateEditing
	w.unlockAndEmit(prev)
	return nil
}

// SetDraft replaces the draft. Only allowed while Editing.
func (w *Workflow) SetDraft(d model.Draft) error {
	w.mu.Lock()
	if w.state != StateEditing {
		w.mu.Unlock()
		return ErrInvalidTransition
	}

	w.draft = d.Clone()
	w.unlockAndEmit(StateEditing)
	return nil
}

// Draft returns a copy of the current draft
func (w *Workflow) Draft() model.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// Submit validates the draft and, if valid, issues exactly one update.
// Validation failures return the field errors together with
// model.ErrInvalidDraft and leave the workflow in Editing. Store failures
// leave the workflow in Editing with the draft untouched.
func (w *Workflow) Submit(ctx context.Context) (model.FieldErrors, error) {
	w.mu.Lock()
	if !w.record.IsOwnedBy(w.actor) {
		w.mu.Unlock()
		return nil, model.ErrNotPermitted
	}
	switch w.state {
	case StateEditing:
	case StateSubmitting:
		w.mu.Unlock()
		return nil, ErrSubmissionInProgress
	default:
		w.mu.Unlock()
		return nil, ErrInvalidTransition
	}

	fields, errs := model.ValidateDraft(w.draft)
	if errs != nil {
		w.fieldErrors = errs
		w.unlockAndEmit(StateEditing)
		return errs, model.ErrInvalidDraft
	}

	id, actor := w.record.ID, w.actor
	w.fieldErrors = nil
	w.state = StateSubmitting
	w.unlockAndEmit(StateEditing)

	err := w.deps.Store.Update(ctx, id, actor, fields)

	w.mu.Lock()
	if err != nil {
		w.state = StateEditing
		w.unlockAndEmit(StateSubmitting)
		w.notify(Notification{
			Title:       "Update failed",
			Description: err.Error(),
			Severity:    SeverityError,
		})
		return nil, fmt.Errorf("update species %d: %w", id, err)
	}

	w.record.Apply(fields)
	w.draft = model.DraftFromFields(fields)
	w.state = StateViewing
	w.unlockAndEmit(StateSubmitting)

	w.notify(Notification{
		Title:       "Species updated",
		Description: fmt.Sprintf("%s was saved.", fields.ScientificName),
		Severity:    SeveritySuccess,
	})
	w.refresh(ctx, id)
	return nil, nil
}

// ========================================
// CONFIRMATIONS
// ========================================

// RequestDiscard asks for confirmation before dropping the draft
func (w *Workflow) RequestDiscard() error {
	w.mu.Lock()
	if w.state != StateEditing {
		w.mu.Unlock()
		return ErrInvalidTransition
	}

	w.resume = StateEditing
	w.state = StateConfirmingDiscard
	w.unlockAndEmit(StateEditing)
	return nil
}

// RequestDelete asks for confirmation before deleting the record
func (w *Workflow) RequestDelete() error {
	w.mu.Lock()
	if !w.record.IsOwnedBy(w.actor) {
		w.mu.Unlock()
		return model.ErrNotPermitted
	}
	if w.state != StateViewing && w.state != StateEditing {
		w.mu.Unlock()
		return ErrInvalidTransition
	}

	prev := w.state
	w.resume = w.state
	w.state = StateConfirmingDelete
	w.unlockAndEmit(prev)
	return nil
}

// Confirm resolves the pending confirmation. Declining is a no-op that
// restores the prior state without notifying.
func (w *Workflow) Confirm(ctx context.Context, accept bool) error {
	w.mu.Lock()
	switch w.state {
	case StateConfirmingDiscard:
		if accept {
			w.draft = model.DraftFrom(&w.record)
			w.fieldErrors = nil
			w.state = StateViewing
		} else {
			w.state = w.resume
		}
		w.unlockAndEmit(StateConfirmingDiscard)
		return nil

	case StateConfirmingDelete:
		if !accept {
			w.state = w.resume
			w.unlockAndEmit(StateConfirmingDelete)
			return nil
		}
		return w.deleteLocked(ctx)

	default:
		w.mu.Unlock()
		return ErrNoPendingConfirmation
	}
}

// deleteLocked is entered with w.mu held and returns with it released
func (w *Workflow) deleteLocked(ctx context.Context) error {
	if !w.record.IsOwnedBy(w.actor) {
		w.state = w.resume
		w.unlockAndEmit(StateConfirmingDelete)
		return model.ErrNotPermitted
	}

	id, actor, name := w.record.ID, w.actor, w.record.ScientificName
	w.state = StateDeleting
	w.unlockAndEmit(StateConfirmingDelete)

	err := w.deps.Store.Delete(ctx, id, actor)

	w.mu.Lock()
	if err != nil {
		w.state = w.resume
		w.unlockAndEmit(StateDeleting)
		w.notify(Notification{
			Title:       "Delete failed",
			Description: err.Error(),
			Severity:    SeverityError,
		})
		return fmt.Errorf("delete species %d: %w", id, err)
	}

	w.state = StateDeleted
	w.unlockAndEmit(StateDeleting)

	w.notify(Notification{
		Title:       "Species deleted",
		Description: fmt.Sprintf("%s was removed.", name),
		Severity:    SeveritySuccess,
	})
	w.refresh(ctx, id)
	return nil
}

// ========================================
// AUTHORITATIVE STATE
// ========================================

// Reload replaces the authoritative record with a freshly fetched copy.
// The draft follows only while Viewing so in-progress edits survive.
func (w *Workflow) Reload(rec model.Species) {
	w.mu.Lock()
	if rec.ID != w.record.ID || w.state == StateDeleted {
		w.mu.Unlock()
		return
	}

	w.record = rec
	if w.state == StateViewing {
		w.draft = model.DraftFrom(&w.record)
	}
	w.unlockAndEmit(w.state)
}

// ========================================
// HELPERS
// ========================================

func (w *Workflow) snapshotLocked() Snapshot {
	snap := Snapshot{
		RecordID: w.record.ID,
		State:    w.state,
		Record:   w.record,
		Draft:    w.draft.Clone(),
		CanEdit:  w.record.IsOwnedBy(w.actor),
	}
	snap.Record.Apply(w.record.Fields())
	if len(w.fieldErrors) > 0 {
		snap.FieldErrors = make(model.FieldErrors, len(w.fieldErrors))
		for k, v := range w.fieldErrors {
			snap.FieldErrors[k] = v
		}
	}
	switch w.state {
	case StateConfirmingDiscard:
		snap.Prompt = &Prompt{Action: "discard", Message: DiscardPrompt}
	case StateConfirmingDelete:
		snap.Prompt = &Prompt{Action: "delete", Message: DeletePrompt}
	}
	return snap
}

// unlockAndEmit releases w.mu and then calls observers with the new state
func (w *Workflow) unlockAndEmit(prev State) {
	snap := w.snapshotLocked()
	observers := make([]Observer, len(w.observers))
	copy(observers, w.observers)
	w.mu.Unlock()

	for _, o := range observers {
		o(prev, snap)
	}
}

func (w *Workflow) notify(n Notification) {
	if w.deps.Notifier != nil {
		w.deps.Notifier.Notify(n)
	}
}

func (w *Workflow) refresh(ctx context.Context, id int64) {
	if w.deps.Refresher != nil {
		w.deps.Refresher.Refresh(ctx, id)
	}
}
