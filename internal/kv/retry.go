package kv

import (
	"context"
	"errors"
	"time"

	"github.com/EuclidesAnchundia/Tutorias/common_library/utils"
)

const (
	breakerFailureThreshold = 5
	breakerResetTimeout     = 30 * time.Second
)

// Retrying retries transient backend failures with exponential backoff
// behind a circuit breaker. ErrNotFound is an answer, not a failure, and
// never counts against the breaker.
type Retrying struct {
	next      Store
	cb        *utils.CircuitBreaker
	attempts  int
	baseDelay time.Duration
}

func NewRetrying(next Store, attempts int, baseDelay time.Duration) *Retrying {
	if attempts <= 0 {
		attempts = 1
	}
	return &Retrying{
		next:      next,
		cb:        utils.NewCircuitBreaker(breakerFailureThreshold, breakerResetTimeout),
		attempts:  attempts,
		baseDelay: baseDelay,
	}
}

func (r *Retrying) Get(ctx context.Context, key string) ([]byte, error) {
	missing := false
	val, err := utils.RetryWithCircuitBreaker(ctx, r.cb, r.attempts, r.baseDelay, func() ([]byte, error) {
		v, err := r.next.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			missing = true
			return nil, nil
		}
		missing = false
		return v, err
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, ErrNotFound
	}
	return val, nil
}

func (r *Retrying) Set(ctx context.Context, key string, value []byte) error {
	_, err := utils.RetryWithCircuitBreaker(ctx, r.cb, r.attempts, r.baseDelay, func() (struct{}, error) {
		return struct{}{}, r.next.Set(ctx, key, value)
	})
	return err
}

func (r *Retrying) Delete(ctx context.Context, key string) error {
	_, err := utils.RetryWithCircuitBreaker(ctx, r.cb, r.attempts, r.baseDelay, func() (struct{}, error) {
		return struct{}{}, r.next.Delete(ctx, key)
	})
	return err
}

func (r *Retrying) Ping(ctx context.Context) error {
	return Ping(ctx, r.next)
}

func (r *Retrying) Close() error {
	return r.next.Close()
}
