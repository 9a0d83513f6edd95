package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"storesync/internal/config"
	"storesync/internal/logger"
	"storesync/internal/worker/processors"
)

// ErrRunInProgress is returned when a run is requested while another is
// still going.
var ErrRunInProgress = errors.New("sync run already in progress")

type Runner interface {
	Run(ctx context.Context) processors.Report
}

// Worker runs the sync pipeline on a fixed interval. At most one run is in
// flight; ticks that land during a run are skipped.
type Worker struct {
	runner   Runner
	logger   *logger.Logger
	interval time.Duration

	running atomic.Bool

	mu   sync.RWMutex
	last *processors.Report

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg *config.Config, runner Runner, logger *logger.Logger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		runner:   runner,
		logger:   logger,
		interval: cfg.Sync.Interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the pipeline immediately and then on every tick until Stop.
func (w *Worker) Start() {
	w.logger.Info("Worker started, syncing every %s", w.interval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.tick()
		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.tick()
			}
		}
	}()
}

func (w *Worker) tick() {
	if _, err := w.RunOnce(w.ctx); errors.Is(err, ErrRunInProgress) {
		w.logger.Warn("Previous sync run still in progress, skipping tick")
	}
}

// Trigger starts a run in the background and returns at once.
func (w *Worker) Trigger() error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(w.ctx)
	}()
	return nil
}

// RunOnce runs the pipeline synchronously.
func (w *Worker) RunOnce(ctx context.Context) (processors.Report, error) {
	if !w.running.CompareAndSwap(false, true) {
		return processors.Report{}, ErrRunInProgress
	}
	return w.run(ctx), nil
}

func (w *Worker) run(ctx context.Context) processors.Report {
	defer w.running.Store(false)

	report := w.runner.Run(ctx)

	w.mu.Lock()
	w.last = &report
	w.mu.Unlock()

	return report
}

func (w *Worker) Running() bool {
	return w.running.Load()
}

// LastReport returns the report of the most recent finished run.
func (w *Worker) LastReport() (processors.Report, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.last == nil {
		return processors.Report{}, false
	}
	return *w.last, true
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.cancel()
	w.wg.Wait()
}
