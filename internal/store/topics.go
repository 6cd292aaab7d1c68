package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// SaveTopic stores t as the student's only topic. An existing topic of the
// same student is overwritten in place and keeps its id when t has none.
// The assigned tutor, if any, is told.
func (s *Store) SaveTopic(ctx context.Context, t *model.Topic) error {
	if t == nil {
		return fmt.Errorf("nil topic: %w", errdefs.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.RegisteredAt.IsZero() {
		t.RegisteredAt = s.timestamp()
	}

	next := slices.Clone(s.topics)
	if i := slices.IndexFunc(next, func(x model.Topic) bool { return x.StudentEmail == t.StudentEmail }); i >= 0 {
		if t.ID == "" {
			t.ID = next[i].ID
		}
		next[i] = *t
	} else {
		if t.ID == "" {
			t.ID = s.newID()
		}
		next = append(next, *t)
	}

	if err := persistLocked(ctx, s, kv.KeyTopics, next); err != nil {
		return err
	}
	s.topics = next

	if tutor, ok := s.assignedTutorLocked(t.StudentEmail); ok {
		s.notifyLocked(ctx, []string{tutor.Email}, model.NotificationNewTopic,
			fmt.Sprintf("El estudiante ha propuesto un nuevo tema: %s", t.Title), nil)
	}
	return nil
}

func (s *Store) UpdateTopic(ctx context.Context, id string, in *model.UpdateTopicInput) (*model.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateTopicLocked(ctx, id, in)
}

// ReviewTopic records the reviewer's decision and tells the student.
func (s *Store) ReviewTopic(ctx context.Context, id string, approved bool, observations string) (*model.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviewedAt := s.timestamp()
	t, err := s.updateTopicLocked(ctx, id, &model.UpdateTopicInput{
		Approved:     &approved,
		Observations: &observations,
		ReviewedAt:   &reviewedAt,
	})
	if err != nil {
		return nil, err
	}

	typ, verb := model.NotificationTopicRejected, "rechazado"
	if approved {
		typ, verb = model.NotificationTopicApproved, "aprobado"
	}
	msg := fmt.Sprintf("Tu tema \"%s\" ha sido %s", t.Title, verb)
	if observations != "" {
		msg += ". Observaciones: " + observations
	}
	s.notifyLocked(ctx, []string{t.StudentEmail}, typ, msg, nil)
	return t, nil
}

func (s *Store) updateTopicLocked(ctx context.Context, id string, in *model.UpdateTopicInput) (*model.Topic, error) {
	i := slices.IndexFunc(s.topics, func(t model.Topic) bool { return t.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("topic %s: %w", id, errdefs.ErrNotFound)
	}

	next := slices.Clone(s.topics)
	next[i] = in.Apply(next[i])
	if err := persistLocked(ctx, s, kv.KeyTopics, next); err != nil {
		return nil, err
	}
	s.topics = next

	updated := next[i]
	return &updated, nil
}

func (s *Store) FindTopic(id string) (*model.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.topics, func(t model.Topic) bool { return t.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("topic %s: %w", id, errdefs.ErrNotFound)
	}
	t := s.topics[i]
	return &t, nil
}

func (s *Store) TopicByStudent(email string) (*model.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.topics, func(t model.Topic) bool { return t.StudentEmail == email })
	if i < 0 {
		return nil, fmt.Errorf("topic of %s: %w", email, errdefs.ErrNotFound)
	}
	t := s.topics[i]
	return &t, nil
}

func (s *Store) ListTopics() []model.Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.topics)
}
