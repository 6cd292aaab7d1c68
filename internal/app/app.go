// Package app wires storage, the change bus, the domain store and the
// services from a Config.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/config"
	"github.com/EuclidesAnchundia/Tutorias/internal/events"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/observability"
	"github.com/EuclidesAnchundia/Tutorias/internal/service"
	"github.com/EuclidesAnchundia/Tutorias/internal/session"
	"github.com/EuclidesAnchundia/Tutorias/internal/store"
)

type App struct {
	Config   *config.Config
	Logger   *logging.Logger
	KV       kv.Store
	Bus      events.Bus
	Store    *store.Store
	Auth     *service.AuthService
	Tutoring *service.TutoringService
	Session  *session.Manager
}

// New opens the configured backends and loads the store. The demo dataset
// is seeded when SEED_ON_START is set and there are no users yet.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	instance, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	backend, err := kv.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	bus, err := events.Open(ctx, cfg, instance.String(), logger)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("open %s events: %w", cfg.EventsDriver, err)
	}

	st := store.New(backend, bus,
		store.WithLogger(logger),
		store.WithOrigin(instance.String()),
	)
	a := &App{
		Config: cfg,
		Logger: logger,
		KV:     backend,
		Bus:    bus,
		Store:  st,
		Auth: service.NewAuthService(st, service.TokenConfig{
			Secret: cfg.JWTSecret,
			Issuer: cfg.JWTIssuer,
			TTL:    cfg.JWTTTL,
		}),
		Tutoring: service.NewTutoringService(st, auth.HashPassword),
		Session:  session.NewManager(st, backend, cfg.SessionKey, logger),
	}

	if err := st.Load(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load store: %w", err)
	}
	if cfg.SeedOnStart {
		seeded, err := st.Seed(ctx, auth.HashPassword)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		if seeded {
			logger.Info(ctx, "Demo dataset seeded")
		}
	}
	return a, nil
}

// Watch keeps the store in sync with other processes sharing the backend.
// It returns when ctx is done.
func (a *App) Watch(ctx context.Context) {
	go func() {
		defer observability.Recover(ctx, "store watch")
		if err := a.Store.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.Logger.Error(ctx, "store watch stopped", zap.Error(err))
			observability.CaptureErr(err)
		}
	}()
}

func (a *App) Close() error {
	return errors.Join(a.Bus.Close(), a.KV.Close())
}
