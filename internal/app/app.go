package app

import (
	"context"

	"storesync/internal/api"
	"storesync/internal/config"
	"storesync/internal/logger"
	"storesync/internal/services/ebay"
	"storesync/internal/worker"
	"storesync/internal/worker/processors"
	"storesync/internal/worker/processors/enrich"
	"storesync/internal/worker/processors/validation"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

// New assembles the application graph. Extra invokes decide what runs:
// the long-lived server or a single sync.
func New(cfg *config.Config, log *logger.Logger, invokes ...any) *fx.App {
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: log.Zap()}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Supply(cfg, log),
		providers(),
		fx.Invoke(StartTokenRefresh),
		fx.Invoke(invokes...),
	)
}

// StartTokenRefresh fetches the first application token and keeps it fresh
// until shutdown. A failed first fetch is logged; the detail client fetches
// lazily on its first call.
func StartTokenRefresh(lc fx.Lifecycle, cfg *config.Config, session *ebay.Session, log *logger.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			if _, err := session.Refresh(startCtx, "startup"); err != nil {
				log.Error("Initial token refresh failed: %v", err)
			}
			go func() {
				defer close(done)
				session.Run(ctx, cfg.Sync.TokenRefreshInterval)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

// StartWorker runs the scheduler for the lifetime of the app.
func StartWorker(lc fx.Lifecycle, w *worker.Worker) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			w.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			w.Stop()
			return nil
		},
	})
}

// StartServer serves the ops API. A listener failure shuts the app down.
func StartServer(lc fx.Lifecycle, server *api.Server, shutdowner fx.Shutdowner, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := server.Start(); err != nil {
					log.Error("API server failed: %v", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
}

// RunOnce performs a single sync and then stops the app.
func RunOnce(lc fx.Lifecycle, w *worker.Worker, shutdowner fx.Shutdowner, log *logger.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				report, err := w.RunOnce(ctx)
				code := 0
				if err != nil || report.Error != "" {
					log.Error("Sync run did not complete cleanly: %v %s", err, report.Error)
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

// Validate checks that the wiring graph resolves without constructing
// anything.
func Validate(cfg *config.Config, log *logger.Logger) error {
	return fx.ValidateApp(
		fx.NopLogger,
		fx.Supply(cfg, log),
		providers(),
		fx.Invoke(StartTokenRefresh, StartWorker, StartServer),
	)
}

func providers() fx.Option {
	return fx.Provide(
		newLimiter,
		newTokenFetcher,
		ebay.NewSession,
		newSearchClient,
		newShoppingClient,

		newWixClient,
		newTransformer,
		validation.New,
		newPublisher,

		newFetcher,
		enrich.New,
		newExporter,
		processors.NewPipeline,

		newWorker,
		newServer,
	)
}
