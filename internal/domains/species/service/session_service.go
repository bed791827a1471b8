package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"species-catalog/internal/domains/species/model"
	"species-catalog/internal/domains/species/repository"
	"species-catalog/internal/domains/species/workflow"
	"species-catalog/internal/infrastructure/metrics"
)

// ErrSessionNotFound is returned for unknown, expired or foreign sessions
var ErrSessionNotFound = errors.New("edit session not found")

// DefaultSessionTTL is how long an idle session survives
const DefaultSessionTTL = 30 * time.Minute

// session is one hosted workflow plus its notification buffer
type session struct {
	id    uuid.UUID
	actor uuid.UUID
	wf    *workflow.Workflow

	mu    sync.Mutex
	notes []workflow.Notification
}

func (s *session) Notify(n workflow.Notification) {
	s.mu.Lock()
	s.notes = append(s.notes, n)
	s.mu.Unlock()

	ev := log.Info()
	if n.Severity == workflow.SeverityError {
		ev = log.Warn()
	}
	ev.Str("session_id", s.id.String()).
		Int64("species_id", s.wf.Snapshot().RecordID).
		Str("title", n.Title).
		Str("description", n.Description).
		Msg("edit session notification")
}

func (s *session) drain() []workflow.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notes
	s.notes = nil
	if out == nil {
		out = []workflow.Notification{}
	}
	return out
}

// workflowStore adapts the repository to workflow.Store
type workflowStore struct {
	repo repository.RepositoryInterface
}

func (w workflowStore) Update(ctx context.Context, id int64, actor uuid.UUID, fields model.SpeciesFields) error {
	_, err := w.repo.Update(ctx, id, actor, fields)
	return err
}

func (w workflowStore) Delete(ctx context.Context, id int64, actor uuid.UUID) error {
	return w.repo.Delete(ctx, id, actor)
}

// sessionService implements SessionServiceInterface on an in-memory TTL cache
type sessionService struct {
	repo     repository.RepositoryInterface
	metrics  *metrics.Metrics
	sessions *gocache.Cache
	ttl      time.Duration
}

// NewSessionService creates the edit session service. m may be nil.
func NewSessionService(repo repository.RepositoryInterface, m *metrics.Metrics, ttl time.Duration) SessionServiceInterface {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	svc := &sessionService{
		repo:     repo,
		metrics:  m,
		sessions: gocache.New(ttl, ttl*2),
		ttl:      ttl,
	}
	svc.sessions.OnEvicted(func(string, interface{}) {
		svc.metrics.SessionClosed()
	})
	return svc
}

// Open loads the record and starts a workflow in Viewing
func (s *sessionService) Open(ctx context.Context, id int64, actor uuid.UUID) (*SessionView, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sess := &session{id: uuid.New(), actor: actor}
	sess.wf = workflow.New(*rec, actor, workflow.Deps{
		Store:     workflowStore{repo: s.repo},
		Notifier:  sess,
		Refresher: workflow.RefresherFunc(s.refresher(sess)),
	})
	sess.wf.Subscribe(func(prev workflow.State, snap workflow.Snapshot) {
		s.metrics.RecordTransition(string(prev), string(snap.State))
	})

	s.sessions.Set(sess.id.String(), sess, s.ttl)
	s.metrics.SessionOpened()

	log.Debug().Str("session_id", sess.id.String()).Int64("species_id", id).Msg("edit session opened")
	return s.view(sess), nil
}

// refresher drops the cached list and pulls the record back into the workflow
func (s *sessionService) refresher(sess *session) func(ctx context.Context, id int64) {
	return func(ctx context.Context, id int64) {
		s.repo.InvalidateList(ctx)

		rec, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, model.ErrSpeciesNotFound) {
				log.Warn().Err(err).Int64("species_id", id).Msg("refresh after mutation failed")
			}
			return
		}
		sess.wf.Reload(*rec)
	}
}

func (s *sessionService) Get(sid uuid.UUID, actor uuid.UUID) (*SessionView, error) {
	sess, err := s.lookup(sid, actor)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *sessionService) BeginEdit(sid uuid.UUID, actor uuid.UUID) (*SessionView, error) {
	return s.act(sid, actor, func(sess *session) error {
		return sess.wf.BeginEdit()
	})
}

func (s *sessionService) SetDraft(sid uuid.UUID, actor uuid.UUID, draft model.Draft) (*SessionView, error) {
	return s.act(sid, actor, func(sess *session) error {
		return sess.wf.SetDraft(draft)
	})
}

func (s *sessionService) Submit(ctx context.Context, sid uuid.UUID, actor uuid.UUID) (*SessionView, error) {
	return s.act(sid, actor, func(sess *session) error {
		_, err := sess.wf.Submit(ctx)
		return err
	})
}

func (s *sessionService) RequestDiscard(sid uuid.UUID, actor uuid.UUID) (*SessionView, error) {
	return s.act(sid, actor, func(sess *session) error {
		return sess.wf.RequestDiscard()
	})
}

func (s *sessionService) RequestDelete(sid uuid.UUID, actor uuid.UUID) (*SessionView, error) {
	return s.act(sid, actor, func(sess *session) error {
		return sess.wf.RequestDelete()
	})
}

func (s *sessionService) Confirm(ctx context.Context, sid uuid.UUID, actor uuid.UUID, accept bool) (*SessionView, error) {
	return s.act(sid, actor, func(sess *session) error {
		return sess.wf.Confirm(ctx, accept)
	})
}

func (s *sessionService) Close(sid uuid.UUID, actor uuid.UUID) error {
	if _, err := s.lookup(sid, actor); err != nil {
		return err
	}
	s.sessions.Delete(sid.String())
	return nil
}

// act runs fn against the session and always returns the resulting view,
// so callers can show field errors and notifications next to the error
func (s *sessionService) act(sid uuid.UUID, actor uuid.UUID, fn func(*session) error) (*SessionView, error) {
	sess, err := s.lookup(sid, actor)
	if err != nil {
		return nil, err
	}

	err = fn(sess)
	view := s.view(sess)

	if view.State == workflow.StateDeleted {
		s.sessions.Delete(sid.String())
	} else {
		s.sessions.Set(sid.String(), sess, s.ttl)
	}
	return view, err
}

func (s *sessionService) lookup(sid uuid.UUID, actor uuid.UUID) (*session, error) {
	v, ok := s.sessions.Get(sid.String())
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess := v.(*session)
	if sess.actor != actor {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionService) view(sess *session) *SessionView {
	return &SessionView{
		SessionID:     sess.id,
		Snapshot:      sess.wf.Snapshot(),
		Notifications: sess.drain(),
	}
}
