package enrich

import (
	"context"

	"storesync/internal/logger"
	"storesync/internal/metrics"
	"storesync/internal/models"
)

// DetailClient looks up the full record of one listing.
type DetailClient interface {
	GetItem(ctx context.Context, itemID string) (*models.ListingDetail, error)
}

type Enricher struct {
	client DetailClient
	logger *logger.Logger
}

func New(client DetailClient, logger *logger.Logger) *Enricher {
	return &Enricher{
		client: client,
		logger: logger,
	}
}

// EnrichBatch returns exactly one enriched listing per summary, in input
// order. A failed detail lookup yields a partial listing carrying only the
// summary images.
func (e *Enricher) EnrichBatch(ctx context.Context, summaries []models.ListingSummary) []models.EnrichedListing {
	enriched := make([]models.EnrichedListing, 0, len(summaries))
	for i := range summaries {
		enriched = append(enriched, e.enrichOne(ctx, &summaries[i]))
	}
	return enriched
}

func (e *Enricher) enrichOne(ctx context.Context, summary *models.ListingSummary) models.EnrichedListing {
	log := e.logger.With("item_id", summary.ItemID)

	detail, err := e.client.GetItem(ctx, summary.ItemID)
	if err != nil || detail == nil {
		log.Warn("Detail lookup for %q failed, continuing with summary only: %v", summary.Title, err)
		metrics.ListingsEnriched.WithLabelValues("partial").Inc()
		return models.EnrichedListing{
			Summary: summary,
			Images:  MergeImages(summary.Images()),
			Partial: true,
		}
	}

	metrics.ListingsEnriched.WithLabelValues("full").Inc()
	return models.EnrichedListing{
		Summary: summary,
		Detail:  detail,
		Images:  MergeImages(summary.Images(), detail.Images()),
	}
}
