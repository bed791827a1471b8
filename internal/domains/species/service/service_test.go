package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"species-catalog/internal/domains/species/model"
	"species-catalog/internal/domains/species/workflow"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func lionDraft() model.Draft {
	return model.Draft{
		ScientificName:  "Panthera leo",
		CommonName:      strPtr("Lion"),
		Kingdom:         model.KingdomAnimalia,
		TotalPopulation: floatPtr(20000),
	}
}

// ========================================
// SPECIES SERVICE
// ========================================

func TestSpeciesService_CreateValidates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSpeciesService(repo, nil)
	owner := uuid.New()

	bad := lionDraft()
	bad.Kingdom = "Minerals"
	_, errs, err := svc.Create(context.Background(), owner, bad)
	assert.ErrorIs(t, err, model.ErrInvalidDraft)
	assert.Contains(t, errs, "kingdom")

	created, errs, err := svc.Create(context.Background(), owner, lionDraft())
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, owner, created.Author)
	assert.Equal(t, "Lion", *created.CommonName)
}

func TestSpeciesService_CreateRequiresActor(t *testing.T) {
	svc := NewSpeciesService(newFakeRepo(), nil)

	_, _, err := svc.Create(context.Background(), uuid.Nil, lionDraft())

	assert.ErrorIs(t, err, model.ErrNotPermitted)
}

func TestSpeciesService_UpdateOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSpeciesService(repo, nil)
	owner := uuid.New()
	rec := repo.seed(owner, "Panthera leo")

	_, _, err := svc.Update(context.Background(), rec.ID, uuid.New(), lionDraft())
	assert.ErrorIs(t, err, model.ErrNotPermitted)
	assert.Equal(t, 0, repo.updates)

	updated, _, err := svc.Update(context.Background(), rec.ID, owner, lionDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(20000), *updated.TotalPopulation)
	assert.Equal(t, 1, repo.updates)
}

func TestSpeciesService_UpdateInvalidNeverReachesStore(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSpeciesService(repo, nil)
	owner := uuid.New()
	rec := repo.seed(owner, "Panthera leo")

	bad := lionDraft()
	bad.ScientificName = "  "
	_, errs, err := svc.Update(context.Background(), rec.ID, owner, bad)

	assert.ErrorIs(t, err, model.ErrInvalidDraft)
	assert.Contains(t, errs, "scientific_name")
	assert.Equal(t, 0, repo.updates)
}

func TestSpeciesService_DeleteIsReal(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSpeciesService(repo, nil)
	owner := uuid.New()
	rec := repo.seed(owner, "Panthera leo")

	assert.ErrorIs(t, svc.Delete(context.Background(), rec.ID, uuid.New()), model.ErrNotPermitted)
	require.NoError(t, svc.Delete(context.Background(), rec.ID, owner))

	_, err := svc.GetByID(context.Background(), rec.ID)
	assert.ErrorIs(t, err, model.ErrSpeciesNotFound)
}

func TestSpeciesService_ListRejectsUnknownKingdom(t *testing.T) {
	svc := NewSpeciesService(newFakeRepo(), nil)

	_, _, err := svc.List(context.Background(), model.SpeciesFilter{Kingdom: "Minerals"})

	assert.ErrorIs(t, err, model.ErrInvalidFilter)
}

// ========================================
// SESSION SERVICE
// ========================================

func TestSessionService_EditAndSubmit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo, nil, time.Minute)
	owner := uuid.New()
	rec := repo.seed(owner, "Panthera leo")
	ctx := context.Background()

	view, err := svc.Open(ctx, rec.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateViewing, view.State)
	assert.True(t, view.CanEdit)
	sid := view.SessionID

	view, err = svc.BeginEdit(sid, owner)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateEditing, view.State)

	_, err = svc.SetDraft(sid, owner, lionDraft())
	require.NoError(t, err)

	view, err = svc.Submit(ctx, sid, owner)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateViewing, view.State)
	require.Len(t, view.Notifications, 1)
	assert.Equal(t, workflow.SeveritySuccess, view.Notifications[0].Severity)
	assert.Equal(t, "Lion", *view.Record.CommonName)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, 1, repo.invalidates)

	// notifications are handed out once
	view, err = svc.Get(sid, owner)
	require.NoError(t, err)
	assert.Empty(t, view.Notifications)
}

func TestSessionService_SubmitInvalidShowsFieldErrors(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo, nil, time.Minute)
	owner := uuid.New()
	rec := repo.seed(owner, "Panthera leo")
	ctx := context.Background()

	view, err := svc.Open(ctx, rec.ID, owner)
	require.NoError(t, err)
	sid := view.SessionID
	_, err = svc.BeginEdit(sid, owner)
	require.NoError(t, err)

	bad := lionDraft()
	bad.Image = strPtr("not a url")
	_, err = svc.SetDraft(sid, owner, bad)
	require.NoError(t, err)

	view, err = svc.Submit(ctx, sid, owner)
	assert.ErrorIs(t, err, model.ErrInvalidDraft)
	require.NotNil(t, view)
	assert.Equal(t, workflow.StateEditing, view.State)
	assert.Contains(t, view.FieldErrors, "image")
	assert.Equal(t, 0, repo.updates)
}

func TestSessionService_StoreFailureKeepsDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo, nil, time.Minute)
	owner := uuid.New()
	rec := repo.seed(owner, "Panthera leo")
	ctx := context.Background()

	view, err := svc.Open(ctx, rec.ID, owner)
	require.NoError(t, err)
	sid := view.SessionID
	_, err = svc.BeginEdit(sid, owner)
	require.NoError(t, err)
	_, err = svc.SetDraft(sid, owner, lionDraft())
	require.NoError(t, err)

	repo.updateErr = errors.New("statement timeout")
	view, err = svc.Submit(ctx, sid, owner)

	require.Error(t, err)
	assert.Equal(t, workflow.StateEditing, view.State)
	assert.True(t, lionDraft().Equal(view.Draft))
	require.Len(t, view.Notifications, 1)
	assert.Equal(t, "statement timeout", view.Notifications[0].Description)
	assert.Equal(t, 0, repo.invalidates)
}

func TestSessionService_NonOwnerReadOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo, nil, time.Minute)
	rec := repo.seed(uuid.New(), "Panthera leo")
	visitor := uuid.New()

	view, err := svc.Open(context.Background(), rec.ID, visitor)
	require.NoError(t, err)
	assert.False(t, view.CanEdit)

	_, err = svc.BeginEdit(view.SessionID, visitor)
	assert.ErrorIs(t, err, model.ErrNotPermitted)
	_, err = svc.RequestDelete(view.SessionID, visitor)
	assert.ErrorIs(t, err, model.ErrNotPermitted)
}

func TestSessionService_ForeignSessionHidden(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo, nil, time.Minute)
	owner := uuid.New()
	rec := repo.seed(owner, "Panthera leo")

	view, err := svc.Open(context.Background(), rec.ID, owner)
	require.NoError(t, err)

	_, err = svc.Get(view.SessionID, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(uuid.New(), owner)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_DeleteFlow(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo, nil, time.Minute)
	owner := uuid.New()
	rec := repo.seed(owner, "Panthera leo")
	ctx := context.Background()

	view, err := svc.Open(ctx, rec.ID, owner)
	require.NoError(t, err)
	sid := view.SessionID

	view, err = svc.RequestDelete(sid, owner)
	require.NoError(t, err)
	require.NotNil(t, view.Prompt)
	assert.Equal(t, workflow.DeletePrompt, view.Prompt.Message)

	// declining leaves everything untouched
	view, err = svc.Confirm(ctx, sid, owner, false)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateViewing, view.State)
	assert.Empty(t, view.Notifications)
	assert.Equal(t, 0, repo.deletes)

	_, err = svc.RequestDelete(sid, owner)
	require.NoError(t, err)
	view, err = svc.Confirm(ctx, sid, owner, true)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateDeleted, view.State)
	assert.Equal(t, 1, repo.deletes)

	_, err = repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, model.ErrSpeciesNotFound)

	// the session is gone once the record is
	_, err = svc.Get(sid, owner)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_Close(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSessionService(repo, nil, time.Minute)
	owner := uuid.New()
	rec := repo.seed(owner, "Panthera leo")

	view, err := svc.Open(context.Background(), rec.ID, owner)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Close(view.SessionID, uuid.New()), ErrSessionNotFound)
	require.NoError(t, svc.Close(view.SessionID, owner))
	_, err = svc.Get(view.SessionID, owner)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_OpenMissingRecord(t *testing.T) {
	svc := NewSessionService(newFakeRepo(), nil, time.Minute)

	_, err := svc.Open(context.Background(), 99, uuid.New())

	assert.ErrorIs(t, err, model.ErrSpeciesNotFound)
}
