package export

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"storesync/internal/config"
	"storesync/internal/events"
	"storesync/internal/logger"
	"storesync/internal/models"
	"storesync/internal/services/wix"
	"storesync/internal/worker/processors/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	created    []*wix.Product
	media      map[string][]string
	failCreate map[string]bool
	failMedia  bool
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, product *wix.Product) (string, error) {
	if f.failCreate[product.Name] {
		return "", fmt.Errorf("%w: create product: 500", wix.ErrAPI)
	}
	f.created = append(f.created, product)
	return fmt.Sprintf("prod-%d", len(f.created)), nil
}

func (f *fakeCatalog) AddMedia(ctx context.Context, productID string, urls []string) error {
	if f.failMedia {
		return errors.New("timeout")
	}
	if f.media == nil {
		f.media = map[string][]string{}
	}
	f.media[productID] = urls
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func newExporter(client CatalogClient, pub events.Publisher) *Exporter {
	log := logger.NewNop()
	transformer := wix.NewTransformer(config.SyncConfig{
		DescriptionMaxLength: 8000,
		MetaDescriptionMax:   160,
		DefaultCurrency:      "USD",
		BrandPlaceholder:     "Unbranded",
	})
	return New(client, transformer, validation.New(log), pub, log)
}

func listing(id, title string, images ...string) models.EnrichedListing {
	return models.EnrichedListing{
		Summary: &models.ListingSummary{ItemID: id, Title: title},
		Images:  images,
	}
}

func TestExportBatchCreatesAndAttachesMedia(t *testing.T) {
	catalog := &fakeCatalog{}
	pub := &recordingPublisher{}

	result := newExporter(catalog, pub).ExportBatch(context.Background(), []models.EnrichedListing{
		listing("1", "Camera", "https://i.ebayimg.com/a/s-l1600.jpg"),
		listing("2", "Lens"),
	})

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.MediaAttached)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, []string{"prod-1", "prod-2"}, result.ProductIDs)

	assert.Equal(t, []string{"https://i.ebayimg.com/a/s-l1600.jpg"}, catalog.media["prod-1"])
	_, attached := catalog.media["prod-2"]
	assert.False(t, attached)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.TypeProductPublished, pub.events[0].Type)
	assert.Equal(t, "prod-1", pub.events[0].ProductID)
	assert.Equal(t, "1", pub.events[0].Data["item_id"])
}

func TestExportBatchSkipsFailedCreate(t *testing.T) {
	catalog := &fakeCatalog{failCreate: map[string]bool{"Broken": true}}
	pub := &recordingPublisher{}

	result := newExporter(catalog, pub).ExportBatch(context.Background(), []models.EnrichedListing{
		listing("1", "Broken", "https://i.ebayimg.com/a/s-l1600.jpg"),
		listing("2", "Fine", "https://i.ebayimg.com/b/s-l1600.jpg"),
	})

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, catalog.media, 1)
	assert.Contains(t, catalog.media, "prod-1")
	assert.Len(t, pub.events, 1)
}

func TestExportBatchKeepsProductWhenMediaFails(t *testing.T) {
	catalog := &fakeCatalog{failMedia: true}

	result := newExporter(catalog, events.Nop{}).ExportBatch(context.Background(), []models.EnrichedListing{
		listing("1", "Camera", "https://i.ebayimg.com/a/s-l1600.jpg"),
	})

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.MediaAttached)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, catalog.created, 1)
}

func TestExportBatchSkipsInvalidProduct(t *testing.T) {
	catalog := &fakeCatalog{}

	result := newExporter(catalog, events.Nop{}).ExportBatch(context.Background(), []models.EnrichedListing{
		listing("1", ""),
	})

	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, catalog.created)
}

func TestExportBatchStopsOnCancel(t *testing.T) {
	catalog := &fakeCatalog{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newExporter(catalog, events.Nop{}).ExportBatch(ctx, []models.EnrichedListing{
		listing("1", "Camera"),
	})

	assert.Equal(t, 0, result.Created)
	assert.Empty(t, catalog.created)
}
