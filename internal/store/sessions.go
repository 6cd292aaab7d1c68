package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/metrics"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// CreateSession appends ts as a pending request and tells the tutor.
func (s *Store) CreateSession(ctx context.Context, ts *model.TutoringSession) error {
	if ts == nil {
		return fmt.Errorf("nil session: %w", errdefs.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ts.ID == "" {
		ts.ID = s.newID()
	}
	if ts.RequestedAt.IsZero() {
		ts.RequestedAt = s.timestamp()
	}
	ts.Status = model.SessionPending

	next := append(slices.Clone(s.sessions), *ts)
	if err := persistLocked(ctx, s, kv.KeySessions, next); err != nil {
		return err
	}
	s.sessions = next

	s.notifyLocked(ctx, []string{ts.TutorEmail}, model.NotificationNewRequest,
		fmt.Sprintf("Nueva solicitud de tutoría: %s", ts.Subject), nil)
	return nil
}

// UpdateSession merges non-status fields. Status only changes through
// TransitionSession.
func (s *Store) UpdateSession(ctx context.Context, id string, in *model.UpdateSessionInput) (*model.TutoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.sessionIndexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("session %s: %w", id, errdefs.ErrNotFound)
	}

	next := slices.Clone(s.sessions)
	next[i] = in.Apply(next[i])
	if err := persistLocked(ctx, s, kv.KeySessions, next); err != nil {
		return nil, err
	}
	s.sessions = next

	updated := next[i]
	return &updated, nil
}

// TransitionSession applies action to the session and records the fields
// in in. Exactly one notification reaches the student on success; an
// illegal action changes nothing and notifies nobody.
func (s *Store) TransitionSession(ctx context.Context, id string, action model.SessionAction, in *model.TransitionInput) (*model.TutoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.sessionIndexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("session %s: %w", id, errdefs.ErrNotFound)
	}

	current := s.sessions[i]
	status, err := model.NextSessionStatus(current.Status, action)
	if err != nil {
		return nil, err
	}

	next := slices.Clone(s.sessions)
	next[i] = in.Apply(current)
	next[i].Status = status
	if err := persistLocked(ctx, s, kv.KeySessions, next); err != nil {
		return nil, err
	}
	s.sessions = next
	metrics.SessionTransitions.WithLabelValues(status.String()).Inc()

	typ, verb := sessionNotification(status)
	s.notifyLocked(ctx, []string{current.StudentEmail}, typ,
		fmt.Sprintf("Tu tutoría \"%s\" ha sido %s", current.Subject, verb), nil)

	updated := next[i]
	return &updated, nil
}

func sessionNotification(status model.SessionStatus) (typ, verb string) {
	switch status {
	case model.SessionAccepted:
		return model.NotificationAccepted, "aceptada"
	case model.SessionRejected:
		return model.NotificationRejected, "rechazada"
	default:
		return model.NotificationCompleted, "completada"
	}
}

func (s *Store) FindSession(id string) (*model.TutoringSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.sessionIndexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("session %s: %w", id, errdefs.ErrNotFound)
	}
	ts := s.sessions[i]
	return &ts, nil
}

func (s *Store) ListSessions() []model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sessions)
}

func (s *Store) SessionsByStudent(email string) []model.TutoringSession {
	return s.filterSessions(func(ts *model.TutoringSession) bool { return ts.StudentEmail == email })
}

func (s *Store) SessionsByTutor(email string) []model.TutoringSession {
	return s.filterSessions(func(ts *model.TutoringSession) bool { return ts.TutorEmail == email })
}

func (s *Store) filterSessions(keep func(*model.TutoringSession) bool) []model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.TutoringSession
	for i := range s.sessions {
		if keep(&s.sessions[i]) {
			out = append(out, s.sessions[i])
		}
	}
	return out
}

func (s *Store) sessionIndexLocked(id string) int {
	return slices.IndexFunc(s.sessions, func(ts model.TutoringSession) bool { return ts.ID == id })
}
