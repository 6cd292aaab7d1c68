package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// SaveAssignment appends a and tells the student. A student has at most
// one assignment; the check runs under the write lock.
func (s *Store) SaveAssignment(ctx context.Context, a *model.Assignment) error {
	if a == nil {
		return fmt.Errorf("nil assignment: %w", errdefs.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.assignments, func(x model.Assignment) bool { return x.StudentEmail == a.StudentEmail }) {
		return fmt.Errorf("student %s already has a tutor: %w", a.StudentEmail, errdefs.ErrAlreadyExists)
	}
	if a.ID == "" {
		a.ID = s.newID()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = s.timestamp()
	}

	next := append(slices.Clone(s.assignments), *a)
	if err := persistLocked(ctx, s, kv.KeyAssignments, next); err != nil {
		return err
	}
	s.assignments = next

	s.notifyLocked(ctx, []string{a.StudentEmail}, model.NotificationTutorAssigned,
		"Se te ha asignado un tutor para tu proceso de titulación", nil)
	return nil
}

func (s *Store) DeleteAssignment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.assignments), func(a model.Assignment) bool { return a.ID == id })
	if len(next) == len(s.assignments) {
		return fmt.Errorf("assignment %s: %w", id, errdefs.ErrNotFound)
	}
	if err := persistLocked(ctx, s, kv.KeyAssignments, next); err != nil {
		return err
	}
	s.assignments = next
	return nil
}

func (s *Store) FindAssignment(id string) (*model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.assignments, func(a model.Assignment) bool { return a.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("assignment %s: %w", id, errdefs.ErrNotFound)
	}
	a := s.assignments[i]
	return &a, nil
}

func (s *Store) ListAssignments() []model.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.assignments)
}

// AssignmentByStudent returns the first assignment of the student.
func (s *Store) AssignmentByStudent(email string) (*model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.assignments, func(a model.Assignment) bool { return a.StudentEmail == email })
	if i < 0 {
		return nil, fmt.Errorf("assignment of %s: %w", email, errdefs.ErrNotFound)
	}
	a := s.assignments[i]
	return &a, nil
}

// AssignedTutor resolves the tutor of the student's first assignment.
// ErrNotFound covers both a missing assignment and a deleted tutor.
func (s *Store) AssignedTutor(studentEmail string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tutor, ok := s.assignedTutorLocked(studentEmail)
	if !ok {
		return nil, fmt.Errorf("tutor of %s: %w", studentEmail, errdefs.ErrNotFound)
	}
	return &tutor, nil
}

// AssignedStudents resolves every student assigned to the tutor, skipping
// assignments whose student no longer exists.
func (s *Store) AssignedStudents(tutorEmail string) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.User
	for _, a := range s.assignments {
		if a.TutorEmail != tutorEmail {
			continue
		}
		if u, ok := s.userLocked(a.StudentEmail); ok {
			out = append(out, u)
		}
	}
	return out
}

func (s *Store) assignedTutorLocked(studentEmail string) (model.User, bool) {
	i := slices.IndexFunc(s.assignments, func(a model.Assignment) bool { return a.StudentEmail == studentEmail })
	if i < 0 {
		return model.User{}, false
	}
	return s.userLocked(s.assignments[i].TutorEmail)
}
