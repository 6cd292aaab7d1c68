// Package session keeps the one active user of a client context and
// persists it under a single key so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

var (
	ErrUserNotFound  = fmt.Errorf("user does not exist: %w", errdefs.ErrNotFound)
	ErrWrongPassword = fmt.Errorf("wrong password: %w", errdefs.ErrAuthentication)
	ErrNotLoggedIn   = fmt.Errorf("no active session: %w", errdefs.ErrAuthentication)
)

// Users is the part of the domain store the manager needs.
type Users interface {
	FindUserByEmail(email string) (*model.User, error)
	UpdateUser(ctx context.Context, email string, in *model.UpdateUserInput) (*model.User, error)
}

type Manager struct {
	mu      sync.RWMutex
	users   Users
	kv      kv.Store
	key     string
	logger  *logging.Logger
	hash    func(password string) (string, error)
	current *model.User
}

type Option func(*Manager)

// WithPasswordHasher replaces bcrypt for new passwords.
func WithPasswordHasher(hash func(password string) (string, error)) Option {
	return func(m *Manager) { m.hash = hash }
}

func NewManager(users Users, backend kv.Store, key string, logger *logging.Logger, opts ...Option) *Manager {
	if key == "" {
		key = kv.DefaultSessionKey
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{users: users, kv: backend, key: key, logger: logger, hash: auth.HashPassword}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login checks the email domain before looking the user up, so a foreign
// address never reaches the store. The outcomes are distinguishable:
// ErrValidation, ErrUserNotFound or ErrWrongPassword.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.User, error) {
	if _, ok := model.ClassifyEmail(email); !ok {
		return nil, fmt.Errorf("email %q is not an institutional address: %w", email, errdefs.ErrValidation)
	}

	u, err := m.users.FindUserByEmail(email)
	if errors.Is(err, errdefs.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, ErrWrongPassword
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.persistLocked(ctx, u); err != nil {
		return nil, err
	}
	m.current = u
	m.logger.Info(ctx, "logged in", zap.String("email", u.Email), zap.String("role", u.Role().String()))

	out := *u
	return &out, nil
}

func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	if err := m.kv.Delete(ctx, m.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// UpdateProfile merges in into the active user and refreshes the
// persisted copy. A new password is validated and stored hashed; in is
// not modified.
func (m *Manager) UpdateProfile(ctx context.Context, in *model.UpdateUserInput) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, ErrNotLoggedIn
	}
	if in != nil && in.Password != nil {
		if err := auth.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hashed, err := m.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		patch := *in
		patch.Password = &hashed
		in = &patch
	}
	updated, err := m.users.UpdateUser(ctx, m.current.Email, in)
	if err != nil {
		return nil, err
	}
	if err := m.persistLocked(ctx, updated); err != nil {
		return nil, err
	}
	m.current = updated

	out := *updated
	return &out, nil
}

// Restore picks up a session persisted by an earlier run. An unreadable
// entry is deleted and the manager stays logged out.
func (m *Manager) Restore(ctx context.Context) error {
	data, err := m.kv.Get(ctx, m.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil || u.Email == "" {
		m.logger.Warn(ctx, "dropping unreadable session", zap.Error(err))
		if delErr := m.kv.Delete(ctx, m.key); delErr != nil {
			return fmt.Errorf("clear session: %w", delErr)
		}
		return nil
	}

	m.mu.Lock()
	m.current = &u
	m.mu.Unlock()
	return nil
}

func (m *Manager) Current() (*model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, false
	}
	out := *m.current
	return &out, true
}

func (m *Manager) CurrentEmail() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return "", false
	}
	return m.current.Email, true
}

func (m *Manager) persistLocked(ctx context.Context, u *model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.kv.Set(ctx, m.key, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
