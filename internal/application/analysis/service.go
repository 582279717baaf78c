package analysis

import (
	"context"
	"errors"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service coordinates analysis requests and status reads. Heavy lifting
// happens in the Worker; the service only owns the PENDING record and the
// read path.
type Service struct {
	repo    analysis.Repository
	docRepo document.Repository
	cache   cache.StatusCache
	worker  *Worker
	logger  *zap.Logger
}

// NewService creates a new analysis Service
func NewService(repo analysis.Repository, docRepo document.Repository, statusCache cache.StatusCache, worker *Worker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		docRepo: docRepo,
		cache:   statusCache,
		worker:  worker,
		logger:  logger,
	}
}

// Request starts analysis for a document. Requests are idempotent per
// document: while a run is pending, processing, or completed, a second
// request returns the existing record without scheduling more work. A
// FAILED run is the exception: requesting again resets it to PENDING and
// requeues the extraction.
func (s *Service) Request(ctx context.Context, tenantID, documentID uuid.UUID) (*AnalysisResponse, error) {
	if _, err := s.docRepo.FindByIDForTenant(ctx, tenantID, documentID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByDocument(ctx, tenantID, documentID)
	if err == nil {
		if existing.Status != analysis.StatusFailed {
			resp := ToAnalysisResponse(existing)
			return &resp, nil
		}
		return s.retryFailed(ctx, tenantID, existing)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	result, err := analysis.NewResult(tenantID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, result); err != nil {
		// Concurrent request won the unique (tenant, document) index
		if errors.Is(err, shared.ErrAlreadyExists) {
			winner, findErr := s.repo.FindByDocument(ctx, tenantID, documentID)
			if findErr != nil {
				return nil, findErr
			}
			resp := ToAnalysisResponse(winner)
			return &resp, nil
		}
		return nil, err
	}

	if err := s.worker.Enqueue(Job{TenantID: tenantID, AnalysisID: result.ID, DocumentID: documentID}); err != nil {
		s.logger.Warn("Analysis queue rejected job",
			zap.String("analysis_id", result.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Analysis requested",
		zap.String("analysis_id", result.ID.String()),
		zap.String("document_id", documentID.String()),
	)
	resp := ToAnalysisResponse(result)
	return &resp, nil
}

// retryFailed resets a failed run to PENDING and requeues it. The cached
// FAILED status must go, or polls would keep reporting the dead run.
func (s *Service) retryFailed(ctx context.Context, tenantID uuid.UUID, result *analysis.Result) (*AnalysisResponse, error) {
	if err := result.Retry(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, result); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, tenantID, result.ID); err != nil {
		s.logger.Warn("Failed to invalidate cached analysis status",
			zap.String("analysis_id", result.ID.String()),
			zap.Error(err),
		)
	}
	if err := s.worker.Enqueue(Job{TenantID: tenantID, AnalysisID: result.ID, DocumentID: result.DocumentID}); err != nil {
		s.logger.Warn("Analysis queue rejected retry job",
			zap.String("analysis_id", result.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Failed analysis re-requested",
		zap.String("analysis_id", result.ID.String()),
		zap.String("document_id", result.DocumentID.String()),
	)
	resp := ToAnalysisResponse(result)
	return &resp, nil
}

// GetStatus returns the current state of an analysis. Terminal results are
// served from the status cache when possible.
func (s *Service) GetStatus(ctx context.Context, tenantID, analysisID uuid.UUID) (*AnalysisResponse, error) {
	if cached, err := s.cache.Get(ctx, tenantID, analysisID); err == nil && cached != nil {
		resp := ToAnalysisResponse(cached)
		return &resp, nil
	}

	result, err := s.repo.FindByIDForTenant(ctx, tenantID, analysisID)
	if err != nil {
		return nil, err
	}

	if result.Status.IsTerminal() {
		if err := s.cache.Set(ctx, result); err != nil {
			s.logger.Warn("Failed to cache analysis status", zap.Error(err))
		}
	}

	resp := ToAnalysisResponse(result)
	return &resp, nil
}
