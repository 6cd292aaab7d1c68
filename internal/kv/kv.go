// Package kv is the persistence boundary of the domain store: a flat
// mapping from a fixed key to an opaque serialized blob. Every backend
// implements Store; the store package never sees driver types.
package kv

import (
	"context"
	"errors"
)

// Collection keys of the persisted layout.
const (
	KeyUsers         = "usuarios"
	KeySessions      = "tutorias"
	KeyTopics        = "temas"
	KeyFiles         = "archivos"
	KeyAssignments   = "asignaciones"
	KeyNotifications = "notificaciones"

	DefaultSessionKey = "sesionActual"
)

// CollectionKeys lists the six collection keys in load order.
var CollectionKeys = []string{
	KeyUsers,
	KeySessions,
	KeyTopics,
	KeyFiles,
	KeyAssignments,
	KeyNotifications,
}

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	// Get returns ErrNotFound when key has never been written or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks s when it supports it and succeeds otherwise.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func prefixed(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + key
}
