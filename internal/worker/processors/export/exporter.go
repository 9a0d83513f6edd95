package export

import (
	"context"
	"time"

	"storesync/internal/events"
	"storesync/internal/logger"
	"storesync/internal/metrics"
	"storesync/internal/models"
	"storesync/internal/services/wix"
	"storesync/internal/worker/processors/validation"
)

// CatalogClient is the destination catalog write API.
type CatalogClient interface {
	CreateProduct(ctx context.Context, product *wix.Product) (string, error)
	AddMedia(ctx context.Context, productID string, urls []string) error
}

// BatchResult counts the outcome of one ExportBatch call.
type BatchResult struct {
	Created       int
	MediaAttached int
	Failed        int
	ProductIDs    []string
}

type Exporter struct {
	client      CatalogClient
	transformer *wix.Transformer
	validator   *validation.Validator
	events      events.Publisher
	logger      *logger.Logger
}

func New(client CatalogClient, transformer *wix.Transformer, validator *validation.Validator, publisher events.Publisher, logger *logger.Logger) *Exporter {
	return &Exporter{
		client:      client,
		transformer: transformer,
		validator:   validator,
		events:      publisher,
		logger:      logger,
	}
}

// ExportBatch publishes each listing in turn: create the product, then
// attach its images. A failed listing is logged and skipped; a product
// whose media upload fails is left in place.
func (e *Exporter) ExportBatch(ctx context.Context, listings []models.EnrichedListing) BatchResult {
	var result BatchResult

	for i := range listings {
		if ctx.Err() != nil {
			e.logger.Warn("Export interrupted, %d listings left unpublished", len(listings)-i)
			break
		}

		listing := &listings[i]
		productID, mediaCount, ok := e.exportOne(ctx, listing)
		if productID != "" {
			result.Created++
			result.ProductIDs = append(result.ProductIDs, productID)
		}
		if mediaCount > 0 {
			result.MediaAttached++
		}
		if !ok {
			result.Failed++
		}
	}

	return result
}

func (e *Exporter) exportOne(ctx context.Context, listing *models.EnrichedListing) (string, int, bool) {
	title := listing.Title()
	log := e.logger.With("item_id", listing.ItemID())
	product := e.transformer.TransformListing(listing)

	if err := e.validator.ValidateProduct(product); err != nil {
		log.Error("Skipping listing %q: %v", title, err)
		metrics.ProductsPublished.WithLabelValues("validate", "error").Inc()
		return "", 0, false
	}

	productID, err := e.client.CreateProduct(ctx, product)
	if err != nil {
		log.Error("Failed to create product for listing %q: %v", title, err)
		metrics.ProductsPublished.WithLabelValues("create", "error").Inc()
		return "", 0, false
	}
	metrics.ProductsPublished.WithLabelValues("create", "ok").Inc()
	log.Info("Created product %s for listing %q", productID, title)

	media := e.validator.FilterMedia(listing.Images)
	mediaCount := 0
	ok := true
	if len(media) > 0 {
		if err := e.client.AddMedia(ctx, productID, media); err != nil {
			log.Error("Failed to attach %d images to product %s (%q): %v", len(media), productID, title, err)
			metrics.ProductsPublished.WithLabelValues("media", "error").Inc()
			ok = false
		} else {
			metrics.ProductsPublished.WithLabelValues("media", "ok").Inc()
			mediaCount = len(media)
		}
	}

	e.publish(ctx, productID, listing, mediaCount)
	return productID, mediaCount, ok
}

func (e *Exporter) publish(ctx context.Context, productID string, listing *models.EnrichedListing, mediaCount int) {
	err := e.events.Publish(ctx, events.Event{
		Type:      events.TypeProductPublished,
		ProductID: productID,
		Data: map[string]interface{}{
			"item_id": listing.ItemID(),
			"title":   listing.Title(),
			"media":   mediaCount,
			"partial": listing.Partial,
		},
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		e.logger.Warn("Failed to publish event for product %s: %v", productID, err)
	}
}
