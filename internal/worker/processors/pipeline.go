package processors

import (
	"context"
	"fmt"
	"time"

	"storesync/internal/config"
	"storesync/internal/events"
	"storesync/internal/logger"
	"storesync/internal/metrics"
	"storesync/internal/models"
	"storesync/internal/ratelimit"
	"storesync/internal/worker/processors/enrich"
	"storesync/internal/worker/processors/export"
	"storesync/internal/worker/processors/fetch"
)

// Report summarises one pipeline run.
type Report struct {
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
	Fetched       int           `json:"fetched"`
	Enriched      int           `json:"enriched"`
	Partial       int           `json:"partial"`
	Created       int           `json:"created"`
	MediaAttached int           `json:"media_attached"`
	Failed        int           `json:"failed"`
	Error         string        `json:"error,omitempty"`
}

type Pipeline struct {
	fetcher    *fetch.Fetcher
	enricher   *enrich.Enricher
	exporter   *export.Exporter
	events     events.Publisher
	logger     *logger.Logger
	batchSize  int
	batchPause time.Duration
}

func NewPipeline(cfg *config.Config, fetcher *fetch.Fetcher, enricher *enrich.Enricher, exporter *export.Exporter, publisher events.Publisher, logger *logger.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		enricher:   enricher,
		exporter:   exporter,
		events:     publisher,
		logger:     logger,
		batchSize:  cfg.Sync.BatchSize,
		batchPause: cfg.Sync.BatchPause,
	}
}

// Run mirrors the store once: fetch every listing, then enrich and publish
// batch by batch. It never panics; failures end up in the log and the report.
func (p *Pipeline) Run(ctx context.Context) (report Report) {
	report.StartedAt = time.Now()
	p.logger.Info("Sync run started")

	defer func() {
		if r := recover(); r != nil {
			report.Error = fmt.Sprintf("panic: %v", r)
			p.logger.Error("Sync run aborted: %v", r)
		}
		report.Duration = time.Since(report.StartedAt)
		metrics.RunDuration.Observe(report.Duration.Seconds())
		p.logger.Info("Sync run finished in %s: fetched=%d enriched=%d partial=%d created=%d media=%d failed=%d",
			report.Duration.Round(time.Millisecond), report.Fetched, report.Enriched, report.Partial,
			report.Created, report.MediaAttached, report.Failed)
		p.publishCompleted(ctx, report)
	}()

	listings := p.fetcher.Fetch(ctx)
	report.Fetched = len(listings)

	for start := 0; start < len(listings); start += p.batchSize {
		if start > 0 {
			if err := ratelimit.Sleep(ctx, p.batchPause); err != nil {
				report.Error = err.Error()
				p.logger.Warn("Sync run cancelled before batch starting at %d", start)
				return report
			}
		}

		end := start + p.batchSize
		if end > len(listings) {
			end = len(listings)
		}
		p.runBatch(ctx, listings[start:end], &report)
	}

	return report
}

func (p *Pipeline) runBatch(ctx context.Context, batch []models.ListingSummary, report *Report) {
	p.logger.Debug("Processing batch of %d listings", len(batch))

	enriched := p.enricher.EnrichBatch(ctx, batch)
	report.Enriched += len(enriched)
	for _, e := range enriched {
		if e.Partial {
			report.Partial++
		}
	}

	result := p.exporter.ExportBatch(ctx, enriched)
	report.Created += result.Created
	report.MediaAttached += result.MediaAttached
	report.Failed += result.Failed
}

func (p *Pipeline) publishCompleted(ctx context.Context, report Report) {
	// Sent even when the run context is already cancelled.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	err := p.events.Publish(ctx, events.Event{
		Type: events.TypeSyncCompleted,
		Data: map[string]interface{}{
			"fetched":        report.Fetched,
			"enriched":       report.Enriched,
			"partial":        report.Partial,
			"created":        report.Created,
			"media_attached": report.MediaAttached,
			"failed":         report.Failed,
			"duration_ms":    report.Duration.Milliseconds(),
			"error":          report.Error,
		},
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Warn("Failed to publish sync summary: %v", err)
	}
}
