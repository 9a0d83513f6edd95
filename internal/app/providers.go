package app

import (
	"context"

	"storesync/internal/api"
	"storesync/internal/config"
	"storesync/internal/events"
	"storesync/internal/logger"
	"storesync/internal/ratelimit"
	"storesync/internal/services/ebay"
	"storesync/internal/services/wix"
	"storesync/internal/worker"
	"storesync/internal/worker/processors"
	"storesync/internal/worker/processors/enrich"
	"storesync/internal/worker/processors/export"
	"storesync/internal/worker/processors/fetch"
	"storesync/internal/worker/processors/validation"

	"go.uber.org/fx"
)

// One limiter is shared by both eBay clients.
func newLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Sync.MinCallInterval)
}

func newTokenFetcher(cfg *config.Config) ebay.TokenFetcher {
	return ebay.NewTokenFetcher(cfg.Ebay)
}

func newSearchClient(cfg *config.Config, limiter *ratelimit.Limiter, log *logger.Logger) *ebay.Client {
	return ebay.NewClient(cfg.Ebay, limiter, log)
}

func newShoppingClient(cfg *config.Config, session *ebay.Session, limiter *ratelimit.Limiter, log *logger.Logger) enrich.DetailClient {
	return ebay.NewShoppingClient(cfg.Ebay, session, limiter, log)
}

func newWixClient(cfg *config.Config, log *logger.Logger) export.CatalogClient {
	return wix.NewClient(cfg.Wix, log)
}

func newTransformer(cfg *config.Config) *wix.Transformer {
	return wix.NewTransformer(cfg.Sync)
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) events.Publisher {
	publisher := events.NewPublisher(cfg.Kafka, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}

func newFetcher(cfg *config.Config, client *ebay.Client, log *logger.Logger) *fetch.Fetcher {
	return fetch.New(client, cfg, log)
}

func newExporter(client export.CatalogClient, transformer *wix.Transformer, validator *validation.Validator, publisher events.Publisher, log *logger.Logger) *export.Exporter {
	return export.New(client, transformer, validator, publisher, log)
}

func newWorker(cfg *config.Config, pipeline *processors.Pipeline, log *logger.Logger) *worker.Worker {
	return worker.New(cfg, pipeline, log)
}

func newServer(cfg *config.Config, w *worker.Worker, session *ebay.Session, log *logger.Logger) *api.Server {
	return api.New(cfg, log, w, session)
}
