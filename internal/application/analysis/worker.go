package analysis

import (
	"context"
	"sync"
	"time"

	documentapp "github.com/GaudenzB/blueearth-contracts/internal/application/document"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/cache"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/extraction"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job identifies one queued extraction run
type Job struct {
	TenantID   uuid.UUID
	AnalysisID uuid.UUID
	DocumentID uuid.UUID
}

// WorkerConfig holds configuration for the analysis worker pool
type WorkerConfig struct {
	Workers        int
	QueueSize      int
	ExtractTimeout time.Duration
}

// DefaultWorkerConfig returns default configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Workers:        4,
		QueueSize:      64,
		ExtractTimeout: 2 * time.Minute,
	}
}

// Worker runs queued analysis jobs in the background. Each job loads the
// document blob, runs the extractor, looks up a contract suggestion, and
// writes the terminal result back.
type Worker struct {
	repo         analysis.Repository
	docRepo      document.Repository
	contractRepo contract.Repository
	storage      documentapp.ObjectStorage
	extractor    extraction.Extractor
	cache        cache.StatusCache
	config       WorkerConfig
	logger       *zap.Logger

	jobs   chan Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorker creates a new analysis worker pool
func NewWorker(
	repo analysis.Repository,
	docRepo document.Repository,
	contractRepo contract.Repository,
	storage documentapp.ObjectStorage,
	extractor extraction.Extractor,
	statusCache cache.StatusCache,
	config WorkerConfig,
	logger *zap.Logger,
) *Worker {
	if config.Workers <= 0 {
		config.Workers = DefaultWorkerConfig().Workers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}
	if config.ExtractTimeout <= 0 {
		config.ExtractTimeout = DefaultWorkerConfig().ExtractTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		repo:         repo,
		docRepo:      docRepo,
		contractRepo: contractRepo,
		storage:      storage,
		extractor:    extractor,
		cache:        statusCache,
		config:       config,
		logger:       logger,
		jobs:         make(chan Job, config.QueueSize),
	}
}

// Start starts the background workers
func (w *Worker) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for i := 0; i < w.config.Workers; i++ {
		w.wg.Add(1)
		go w.runLoop(ctx)
	}

	w.logger.Info("analysis worker started",
		zap.Int("workers", w.config.Workers),
		zap.Int("queue_size", w.config.QueueSize),
	)
	return nil
}

// Stop gracefully stops the workers. Jobs still queued are dropped; their
// records stay PENDING and can be re-requested.
func (w *Worker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("analysis worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue schedules a job without blocking. A full queue is reported to the
// caller instead of stalling the request path.
func (w *Worker) Enqueue(job Job) error {
	select {
	case w.jobs <- job:
		return nil
	default:
		return shared.NewDomainError("QUEUE_FULL", "Analysis queue is full, try again later")
	}
}

func (w *Worker) runLoop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			w.process(ctx, job)
		}
	}
}

func (w *Worker) process(ctx context.Context, job Job) {
	log := w.logger.With(
		zap.String("analysis_id", job.AnalysisID.String()),
		zap.String("document_id", job.DocumentID.String()),
	)

	result, err := w.repo.FindByIDForTenant(ctx, job.TenantID, job.AnalysisID)
	if err != nil {
		log.Error("failed to load analysis record", zap.Error(err))
		return
	}
	if result.Status.IsTerminal() {
		return
	}

	if err := result.Start(); err != nil {
		log.Error("failed to start analysis", zap.Error(err))
		return
	}
	if err := w.repo.Save(ctx, result); err != nil {
		log.Error("failed to persist PROCESSING state", zap.Error(err))
		return
	}

	extracted, confidence, extractErr := w.extract(ctx, job)
	if extractErr != nil {
		log.Warn("extraction failed", zap.Error(extractErr))
		w.finish(ctx, result, func() error { return result.Fail(extractErr.Error()) })
		return
	}

	suggested := w.suggestContract(ctx, job.TenantID, extracted)
	w.finish(ctx, result, func() error { return result.Complete(extracted, confidence, suggested) })
	log.Info("analysis completed", zap.String("status", string(result.Status)))
}

func (w *Worker) extract(ctx context.Context, job Job) (analysis.Extraction, map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, w.config.ExtractTimeout)
	defer cancel()

	doc, err := w.docRepo.FindByIDForTenant(ctx, job.TenantID, job.DocumentID)
	if err != nil {
		return analysis.Extraction{}, nil, err
	}

	content, err := w.storage.Get(ctx, doc.StorageKey)
	if err != nil {
		return analysis.Extraction{}, nil, err
	}
	defer content.Close()

	return w.extractor.Extract(ctx, doc, content)
}

// suggestContract matches the extracted counterparty against existing
// contracts. Best effort: a lookup failure just means no suggestion.
func (w *Worker) suggestContract(ctx context.Context, tenantID uuid.UUID, extracted analysis.Extraction) *uuid.UUID {
	if extracted.CounterpartyName == "" {
		return nil
	}
	matches, err := w.contractRepo.FindByCounterparty(ctx, tenantID, extracted.CounterpartyName)
	if err != nil || len(matches) == 0 {
		return nil
	}
	id := matches[0].ID
	return &id
}

func (w *Worker) finish(ctx context.Context, result *analysis.Result, transition func() error) {
	if err := transition(); err != nil {
		w.logger.Error("invalid analysis transition", zap.Error(err))
		return
	}
	if err := w.repo.Save(ctx, result); err != nil {
		w.logger.Error("failed to persist terminal analysis", zap.Error(err))
		return
	}
	if err := w.cache.Set(ctx, result); err != nil {
		w.logger.Warn("failed to cache terminal analysis", zap.Error(err))
	}
}
