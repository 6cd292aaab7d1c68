// Package events carries "collection changed" notices between processes
// that share one KV backend.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrClosed = errors.New("events: bus closed")

// Change announces that Key was rewritten by the process identified by
// Origin.
type Change struct {
	Key    string    `json:"key"`
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

type Bus interface {
	Publish(ctx context.Context, c Change) error
	// Subscribe delivers every change published after it returns. The
	// channel is closed when ctx is done or the bus is closed.
	Subscribe(ctx context.Context) (<-chan Change, error)
	Close() error
}

func encodeChange(c Change) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal change: %w", err)
	}
	return data, nil
}

func decodeChange(data []byte) (Change, error) {
	var c Change
	if err := json.Unmarshal(data, &c); err != nil {
		return Change{}, fmt.Errorf("failed to unmarshal change: %w", err)
	}
	if c.Key == "" {
		return Change{}, fmt.Errorf("change without key")
	}
	return c, nil
}
