package fetch

import (
	"context"
	"time"

	"storesync/internal/config"
	"storesync/internal/logger"
	"storesync/internal/metrics"
	"storesync/internal/models"
	"storesync/internal/ratelimit"
)

// SearchClient returns one page of a store's listings.
type SearchClient interface {
	FindItemsInStore(ctx context.Context, storeName string, pageSize, page int) ([]models.ListingSummary, error)
}

type Fetcher struct {
	client     SearchClient
	logger     *logger.Logger
	storeName  string
	pageSize   int
	maxPages   int
	retryPause time.Duration
}

func New(client SearchClient, cfg *config.Config, logger *logger.Logger) *Fetcher {
	return &Fetcher{
		client:     client,
		logger:     logger,
		storeName:  cfg.Ebay.StoreName,
		pageSize:   cfg.Sync.PageSize,
		maxPages:   cfg.Sync.MaxPages,
		retryPause: cfg.Sync.PageRetryPause,
	}
}

// Fetch pages through the store until the page cap is reached or a page
// comes back short or empty. A failed page is logged and skipped after a
// pause.
func (f *Fetcher) Fetch(ctx context.Context) []models.ListingSummary {
	var listings []models.ListingSummary

	for page := 1; page <= f.maxPages; page++ {
		if ctx.Err() != nil {
			break
		}

		items, err := f.client.FindItemsInStore(ctx, f.storeName, f.pageSize, page)
		if err != nil {
			f.logger.Error("Failed to fetch page %d of store %s: %v", page, f.storeName, err)
			metrics.SearchPageFailures.Inc()
			if err := ratelimit.Sleep(ctx, f.retryPause); err != nil {
				break
			}
			continue
		}

		if len(items) == 0 {
			f.logger.Debug("Store %s page %d is empty, stopping", f.storeName, page)
			break
		}

		listings = append(listings, items...)
		metrics.ListingsFetched.Add(float64(len(items)))

		if len(items) < f.pageSize {
			break
		}
	}

	f.logger.Info("Fetched %d listings from store %s", len(listings), f.storeName)
	return listings
}
