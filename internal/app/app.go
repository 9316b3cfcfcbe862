package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kmf229/op-net-rate/internal/config"
	"github.com/kmf229/op-net-rate/internal/fetcher"
	"github.com/kmf229/op-net-rate/internal/notify"
	"github.com/kmf229/op-net-rate/internal/store"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Alerts *notify.Center
}

// NewApp constructs a new application handle. Banners go to the log sink.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	alerts := notify.NewCenter(notify.Options{
		ErrorTTL:   cfg.Notify.ErrorTTL,
		SuccessTTL: cfg.Notify.SuccessTTL,
	}, notify.NewLogSink(logger), logger)

	return &App{
		Config: cfg,
		Logger: logger.With().Str("component", "app").Logger(),
		Alerts: alerts,
	}
}

// Close releases shared resources.
func (a *App) Close() {
	if a.Alerts != nil {
		a.Alerts.Close()
	}
}

func (a *App) newClient() *fetcher.Client {
	return fetcher.NewClient(fetcher.Options{
		BaseURL:   a.Config.API.BaseURL,
		Timeout:   a.Config.API.RequestTimeout,
		UserAgent: a.Config.API.UserAgent,
	}, a.Alerts, a.Logger)
}

// openTrackedItems builds the tracked-items store for the configured backend.
// The returned closer is non-nil only when the backend holds resources.
func (a *App) openTrackedItems(ctx context.Context) (*store.TrackedItems, func(), error) {
	switch a.Config.Storage.Backend {
	case "file":
		kv := store.NewFileKV(a.Config.Storage.Path)
		return store.NewTrackedItems(kv, a.Logger), nil, nil
	case "postgres":
		pool, err := store.NewPool(ctx, a.Config.Storage)
		if err != nil {
			return nil, nil, err
		}
		kv := store.NewPostgresKV(pool)
		if err := kv.Init(ctx); err != nil {
			kv.Close()
			return nil, nil, err
		}
		return store.NewTrackedItems(kv, a.Logger), kv.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", a.Config.Storage.Backend)
	}
}
