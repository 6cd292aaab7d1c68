// Package store holds the six record collections of the tutoring system
// and every mutation and query over them. Each collection is persisted as
// one JSON array under its own key; a write replaces the whole array.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
	"github.com/EuclidesAnchundia/Tutorias/internal/events"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/metrics"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

type Store struct {
	mu sync.RWMutex

	kv     kv.Store
	bus    events.Bus
	origin string
	logger *logging.Logger
	now    func() time.Time
	newID  func() string

	users         []model.User
	sessions      []model.TutoringSession
	topics        []model.Topic
	files         []model.File
	assignments   []model.Assignment
	notifications []model.Notification
}

type Option func(*Store)

func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces time.Now. Returned times are normalised to UTC
// milliseconds.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithOrigin names this process on the change bus.
func WithOrigin(origin string) Option {
	return func(s *Store) { s.origin = origin }
}

// New builds an empty store. bus may be nil when no other process shares
// the backend. Call Load to read persisted state.
func New(backend kv.Store, bus events.Bus, opts ...Option) *Store {
	s := &Store{
		kv:     backend,
		bus:    bus,
		logger: logging.NewNop(),
		now:    time.Now,
		newID:  newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.origin == "" {
		s.origin = uuid.NewString()
	}
	return s
}

// newID returns a UUIDv7: a millisecond timestamp prefix and a random suffix.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Store) Origin() string {
	return s.origin
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Load reads every collection from the backend. Missing keys load as
// empty collections; unparsable ones are dropped from the backend and
// load as empty too.
func (s *Store) Load(ctx context.Context) error {
	for _, key := range kv.CollectionKeys {
		if err := s.reload(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) reload(ctx context.Context, key string) error {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		data = nil
	} else if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.decodeLocked(key, data); err != nil {
		s.logger.Warn(ctx, "dropping unreadable collection", zap.String("key", key), zap.Error(err))
		if delErr := s.kv.Delete(ctx, key); delErr != nil {
			s.logger.Error(ctx, "failed to drop unreadable collection", zap.String("key", key), zap.Error(delErr))
		}
		_ = s.decodeLocked(key, nil)
	}
	return nil
}

func (s *Store) decodeLocked(key string, data []byte) error {
	var err error
	switch key {
	case kv.KeyUsers:
		s.users, err = decodeCollection[model.User](data)
	case kv.KeySessions:
		s.sessions, err = decodeCollection[model.TutoringSession](data)
	case kv.KeyTopics:
		s.topics, err = decodeCollection[model.Topic](data)
	case kv.KeyFiles:
		s.files, err = decodeCollection[model.File](data)
	case kv.KeyAssignments:
		s.assignments, err = decodeCollection[model.Assignment](data)
	case kv.KeyNotifications:
		s.notifications, err = decodeCollection[model.Notification](data)
	default:
		return fmt.Errorf("unknown collection %q", key)
	}
	return err
}

func decodeCollection[T any](data []byte) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// persistLocked writes one collection and announces it. The caller holds
// the write lock and commits the new slice only when this succeeds.
func persistLocked[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	err = s.kv.Set(ctx, key, data)
	metrics.ObserveStoreWrite(key, err)
	if err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	s.publish(ctx, key)
	return nil
}

func (s *Store) publish(ctx context.Context, key string) {
	if s.bus == nil {
		return
	}
	c := events.Change{Key: key, Origin: s.origin, At: s.timestamp()}
	if err := s.bus.Publish(ctx, c); err != nil {
		s.logger.Warn(ctx, "failed to publish change", zap.String("key", key), zap.Error(err))
	}
}

// Watch reloads collections rewritten by other processes until ctx is
// done or the bus closes. Changes this store published itself are
// skipped.
func (s *Store) Watch(ctx context.Context) error {
	if s.bus == nil {
		<-ctx.Done()
		return nil
	}
	changes, err := s.bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	for c := range changes {
		if c.Origin == s.origin {
			continue
		}
		if !slices.Contains(kv.CollectionKeys, c.Key) {
			continue
		}
		if err := s.reload(ctx, c.Key); err != nil {
			s.logger.Error(ctx, "failed to reload collection", zap.String("key", c.Key), zap.Error(err))
			continue
		}
		metrics.StoreReloads.WithLabelValues(c.Key).Inc()
		s.logger.Debug(ctx, "collection reloaded", zap.String("key", c.Key), zap.String("origin", c.Origin))
	}
	return nil
}

