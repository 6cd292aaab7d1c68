package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// CreateUser appends u and tells every coordinator registered before it.
// ID and registration time are filled in when empty.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	if u == nil || u.Profile == nil {
		return fmt.Errorf("user without profile: %w", errdefs.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userIndexLocked(u.Email) >= 0 {
		return fmt.Errorf("user %s: %w", u.Email, errdefs.ErrAlreadyExists)
	}

	if u.ID == "" {
		u.ID = s.newID()
	}
	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = s.timestamp()
	}

	var coordinators []string
	for _, existing := range s.users {
		if existing.Role() == model.RoleCoordinator {
			coordinators = append(coordinators, existing.Email)
		}
	}

	next := append(slices.Clone(s.users), *u)
	if err := persistLocked(ctx, s, kv.KeyUsers, next); err != nil {
		return err
	}
	s.users = next

	s.notifyLocked(ctx, coordinators, model.NotificationNewUser,
		fmt.Sprintf("Nuevo usuario registrado: %s %s", u.Names, u.Surnames), nil)
	return nil
}

// UpdateUser merges in into the first user with email.
func (s *Store) UpdateUser(ctx context.Context, email string, in *model.UpdateUserInput) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndexLocked(email)
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", email, errdefs.ErrNotFound)
	}

	next := slices.Clone(s.users)
	next[i] = in.Apply(next[i])
	if err := persistLocked(ctx, s, kv.KeyUsers, next); err != nil {
		return nil, err
	}
	s.users = next

	updated := next[i]
	return &updated, nil
}

// DeleteUser removes every record with email. Records in other
// collections that reference it are left alone.
func (s *Store) DeleteUser(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.users), func(u model.User) bool { return u.Email == email })
	if len(next) == len(s.users) {
		return fmt.Errorf("user %s: %w", email, errdefs.ErrNotFound)
	}
	if err := persistLocked(ctx, s, kv.KeyUsers, next); err != nil {
		return err
	}
	s.users = next
	return nil
}

func (s *Store) FindUserByEmail(email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.userIndexLocked(email)
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", email, errdefs.ErrNotFound)
	}
	u := s.users[i]
	return &u, nil
}

func (s *Store) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

// FilterUsers returns the users matching every set field of f.
func (s *Store) FilterUsers(f model.UserFilter) []model.User {
	return s.filterUsers(f.Match)
}

func (s *Store) UsersByFaculty(faculty string) []model.User {
	return s.FilterUsers(model.UserFilter{Faculty: faculty})
}

func (s *Store) UsersByRole(role model.Role) []model.User {
	return s.FilterUsers(model.UserFilter{Role: role})
}

// ValidateCredentials reports whether a user with email exists and
// password matches.
func (s *Store) ValidateCredentials(email, password string) bool {
	u, err := s.FindUserByEmail(email)
	if err != nil {
		return false
	}
	return auth.CheckPassword(u.Password, password)
}

func (s *Store) filterUsers(keep func(*model.User) bool) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.User
	for i := range s.users {
		if keep(&s.users[i]) {
			out = append(out, s.users[i])
		}
	}
	return out
}

func (s *Store) userIndexLocked(email string) int {
	return slices.IndexFunc(s.users, func(u model.User) bool { return u.Email == email })
}

func (s *Store) userLocked(email string) (model.User, bool) {
	i := s.userIndexLocked(email)
	if i < 0 {
		return model.User{}, false
	}
	return s.users[i], true
}
