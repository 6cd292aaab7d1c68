package kv

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EuclidesAnchundia/Tutorias/common_library/utils"
	"github.com/EuclidesAnchundia/Tutorias/internal/config"
)

// runContract exercises the behaviour every backend must share.
func runContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, KeyUsers)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, KeyUsers, []byte(`[{"email":"a@live.uleam.edu.ec"}]`)))
		got, err := s.Get(ctx, KeyUsers)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"email":"a@live.uleam.edu.ec"}]`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, KeyTopics, []byte(`[1]`)))
		require.NoError(t, s.Set(ctx, KeyTopics, []byte(`[2]`)))
		got, err := s.Get(ctx, KeyTopics)
		require.NoError(t, err)
		assert.Equal(t, `[2]`, string(got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, DefaultSessionKey, []byte(`{}`)))
		require.NoError(t, s.Delete(ctx, DefaultSessionKey))
		_, err := s.Get(ctx, DefaultSessionKey)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "nunca-escrito"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, KeyFiles, []byte(`["f"]`)))
		require.NoError(t, s.Set(ctx, KeyAssignments, []byte(`["a"]`)))
		require.NoError(t, s.Delete(ctx, KeyFiles))
		got, err := s.Get(ctx, KeyAssignments)
		require.NoError(t, err)
		assert.Equal(t, `["a"]`, string(got))
	})
}

// ── Backends ──

func TestMemory(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	runContract(t, s)

	t.Run("returned slices are copies", func(t *testing.T) {
		ctx := context.Background()
		buf := []byte(`[]`)
		require.NoError(t, s.Set(ctx, KeySessions, buf))
		buf[0] = 'X'
		got, err := s.Get(ctx, KeySessions)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})
}

func TestBolt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tutorias.db")
	s, err := OpenBolt(path)
	require.NoError(t, err)
	runContract(t, s)
	require.NoError(t, s.Close())

	t.Run("survives reopen", func(t *testing.T) {
		s, err := OpenBolt(path)
		require.NoError(t, err)
		defer s.Close()
		got, err := s.Get(context.Background(), KeyUsers)
		require.NoError(t, err)
		assert.Contains(t, string(got), "a@live.uleam.edu.ec")
	})
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutorias.sqlite")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	runContract(t, s)
	assert.NoError(t, Ping(context.Background(), s))
	require.NoError(t, s.Close())

	t.Run("survives reopen", func(t *testing.T) {
		s, err := OpenSQLite(path)
		require.NoError(t, err)
		defer s.Close()
		got, err := s.Get(context.Background(), KeyTopics)
		require.NoError(t, err)
		assert.Equal(t, `[2]`, string(got))
	})
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "usuarios", prefixed("", "usuarios"))
	assert.Equal(t, "demo:usuarios", prefixed("demo:", "usuarios"))
}

// ── Retrying ──

type flakyStore struct {
	*Memory
	failures atomic.Int32
	calls    atomic.Int32
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	f.calls.Add(1)
	if f.failures.Load() > 0 {
		f.failures.Add(-1)
		return utils.ErrTransient
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.calls.Add(1)
	return f.Memory.Get(ctx, key)
}

func TestRetrying(t *testing.T) {
	ctx := context.Background()

	t.Run("retries transient failures", func(t *testing.T) {
		inner := &flakyStore{Memory: NewMemory()}
		inner.failures.Store(2)
		r := NewRetrying(inner, 3, 0)

		require.NoError(t, r.Set(ctx, KeyUsers, []byte(`[]`)))
		assert.Equal(t, int32(3), inner.calls.Load())
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		inner := &flakyStore{Memory: NewMemory()}
		inner.failures.Store(10)
		r := NewRetrying(inner, 2, 0)

		err := r.Set(ctx, KeyUsers, []byte(`[]`))
		assert.ErrorIs(t, err, utils.ErrTransient)
		assert.Equal(t, int32(2), inner.calls.Load())
	})

	t.Run("not found is returned without retrying", func(t *testing.T) {
		inner := &flakyStore{Memory: NewMemory()}
		r := NewRetrying(inner, 3, 0)

		for range breakerFailureThreshold + 1 {
			_, err := r.Get(ctx, KeyTopics)
			assert.ErrorIs(t, err, ErrNotFound)
		}
		assert.Equal(t, int32(breakerFailureThreshold+1), inner.calls.Load())
		assert.Equal(t, utils.StateClosed, r.cb.State())
	})

	t.Run("non-retriable errors pass through once", func(t *testing.T) {
		boom := errors.New("boom")
		r := NewRetrying(&failingStore{Memory: NewMemory(), err: boom}, 3, 0)
		err := r.Delete(ctx, KeyFiles)
		assert.ErrorIs(t, err, boom)
	})
}

type failingStore struct {
	*Memory
	err error
}

func (f *failingStore) Delete(context.Context, string) error { return f.err }

func testConfig(driver string) *config.Config {
	return &config.Config{
		StorageDriver:    driver,
		RetryMaxAttempts: 2,
		SessionKey:       DefaultSessionKey,
	}
}
