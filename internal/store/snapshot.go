package store

import (
	"context"
	"slices"

	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// Snapshot is every collection keyed by its storage key, the same shape
// as a dump of the browser storage.
type Snapshot struct {
	Users         []model.User            `json:"usuarios"`
	Sessions      []model.TutoringSession `json:"tutorias"`
	Topics        []model.Topic           `json:"temas"`
	Files         []model.File            `json:"archivos"`
	Assignments   []model.Assignment      `json:"asignaciones"`
	Notifications []model.Notification    `json:"notificaciones"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Users:         slices.Clone(s.users),
		Sessions:      slices.Clone(s.sessions),
		Topics:        slices.Clone(s.topics),
		Files:         slices.Clone(s.files),
		Assignments:   slices.Clone(s.assignments),
		Notifications: slices.Clone(s.notifications),
	}
}

// Import replaces every collection with the ones in snap.
func (s *Store) Import(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceAllLocked(ctx, snap)
}

// Reset empties all six collections.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceAllLocked(ctx, Snapshot{})
}

// replaceAllLocked writes collection by collection; each one is committed
// as soon as it is persisted so memory never runs ahead of the backend.
func (s *Store) replaceAllLocked(ctx context.Context, snap Snapshot) error {
	if err := persistLocked(ctx, s, kv.KeyUsers, snap.Users); err != nil {
		return err
	}
	s.users = snap.Users

	if err := persistLocked(ctx, s, kv.KeySessions, snap.Sessions); err != nil {
		return err
	}
	s.sessions = snap.Sessions

	if err := persistLocked(ctx, s, kv.KeyTopics, snap.Topics); err != nil {
		return err
	}
	s.topics = snap.Topics

	if err := persistLocked(ctx, s, kv.KeyFiles, snap.Files); err != nil {
		return err
	}
	s.files = snap.Files

	if err := persistLocked(ctx, s, kv.KeyAssignments, snap.Assignments); err != nil {
		return err
	}
	s.assignments = snap.Assignments

	if err := persistLocked(ctx, s, kv.KeyNotifications, snap.Notifications); err != nil {
		return err
	}
	s.notifications = snap.Notifications
	return nil
}
