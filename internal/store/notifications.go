package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/metrics"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// CreateNotification appends an unread notification for email. payload,
// when not nil, is stored as JSON.
func (s *Store) CreateNotification(ctx context.Context, email, typ, message string, payload any) (*model.Notification, error) {
	raw, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.newNotificationLocked(email, typ, message, raw)
	next := append(slices.Clone(s.notifications), n)
	if err := persistLocked(ctx, s, kv.KeyNotifications, next); err != nil {
		return nil, err
	}
	s.notifications = next
	metrics.NotificationsCreated.WithLabelValues(typ).Inc()
	return &n, nil
}

// NotificationsFor returns email's notifications in insertion order.
func (s *Store) NotificationsFor(email string) []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Notification
	for _, n := range s.notifications {
		if n.UserEmail == email {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) FindNotification(id string) (*model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.notifications, func(n model.Notification) bool { return n.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("notification %s: %w", id, errdefs.ErrNotFound)
	}
	n := s.notifications[i]
	return &n, nil
}

// MarkNotificationRead flips one notification to read. Marking an already
// read notification succeeds without writing.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.notifications, func(n model.Notification) bool { return n.ID == id })
	if i < 0 {
		return fmt.Errorf("notification %s: %w", id, errdefs.ErrNotFound)
	}
	if s.notifications[i].Read {
		return nil
	}

	next := slices.Clone(s.notifications)
	next[i].Read = true
	if err := persistLocked(ctx, s, kv.KeyNotifications, next); err != nil {
		return err
	}
	s.notifications = next
	return nil
}

// MarkAllNotificationsRead flips every unread notification of email and
// returns how many changed.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.notifications)
	changed := 0
	for i := range next {
		if next[i].UserEmail == email && !next[i].Read {
			next[i].Read = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := persistLocked(ctx, s, kv.KeyNotifications, next); err != nil {
		return 0, err
	}
	s.notifications = next
	return changed, nil
}

func (s *Store) newNotificationLocked(email, typ, message string, payload json.RawMessage) model.Notification {
	return model.Notification{
		ID:        s.newID(),
		UserEmail: email,
		Type:      typ,
		Message:   message,
		Payload:   payload,
		Read:      false,
		CreatedAt: s.timestamp(),
	}
}

// notifyLocked appends one notification per target as a side effect of
// another write. Failures are logged and never reach the caller.
func (s *Store) notifyLocked(ctx context.Context, targets []string, typ, message string, payload any) {
	if len(targets) == 0 {
		return
	}
	raw, err := encodePayload(payload)
	if err != nil {
		s.logger.Warn(ctx, "dropping notification payload", zap.String("type", typ), zap.Error(err))
		raw = nil
	}

	next := slices.Clone(s.notifications)
	for _, email := range targets {
		next = append(next, s.newNotificationLocked(email, typ, message, raw))
	}
	if err := persistLocked(ctx, s, kv.KeyNotifications, next); err != nil {
		s.logger.Error(ctx, "failed to store notification",
			zap.String("type", typ),
			zap.Strings("targets", targets),
			zap.Error(err),
		)
		return
	}
	s.notifications = next
	metrics.NotificationsCreated.WithLabelValues(typ).Add(float64(len(targets)))
}

func encodePayload(payload any) (json.RawMessage, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return p, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode notification payload: %w", err)
	}
	return raw, nil
}
