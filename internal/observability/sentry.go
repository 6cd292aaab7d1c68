package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures the global client. An empty dsn disables reporting
// and CaptureErr becomes a no-op.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CaptureCtx prefers the hub attached to ctx so request tags travel with the
// event.
func CaptureCtx(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// Recover reports a panic and re-raises it.
func Recover(ctx context.Context, what string) {
	if r := recover(); r != nil {
		CaptureCtx(ctx, fmt.Errorf("panic in %s: %v", what, r))
		sentry.Flush(2 * time.Second)
		panic(r)
	}
}
