package events

import (
	"context"
	"sync"
)

const subscriberBuffer = 64

// Local fans changes out to subscribers inside one process.
type Local struct {
	mu     sync.Mutex
	subs   map[chan Change]struct{}
	done   chan struct{}
	closed bool
}

func NewLocal() *Local {
	return &Local{
		subs: make(map[chan Change]struct{}),
		done: make(chan struct{}),
	}
}

func (b *Local) Publish(ctx context.Context, c Change) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for ch := range b.subs {
		// a subscriber more than subscriberBuffer changes behind misses the overflow
		select {
		case ch <- c:
		default:
		}
	}
	return nil
}

func (b *Local) Subscribe(ctx context.Context) (<-chan Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	ch := make(chan Change, subscriberBuffer)
	b.subs[ch] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(ch)
		case <-b.done:
		}
	}()
	return ch, nil
}

func (b *Local) unsubscribe(ch chan Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

func (b *Local) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
	return nil
}
