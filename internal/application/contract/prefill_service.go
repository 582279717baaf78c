package contract

import (
	"context"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrefillService stores and serves wizard prefill snapshots
type PrefillService struct {
	repo    contract.PrefillRepository
	docRepo document.Repository
	logger  *zap.Logger
}

// NewPrefillService creates a new PrefillService
func NewPrefillService(repo contract.PrefillRepository, docRepo document.Repository, logger *zap.Logger) *PrefillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrefillService{repo: repo, docRepo: docRepo, logger: logger}
}

// Create stores a prefill snapshot and returns its id
func (s *PrefillService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePrefillRequest) (*PrefillResponse, error) {
	if _, err := s.docRepo.FindByIDForTenant(ctx, tenantID, req.DocumentID); err != nil {
		return nil, err
	}

	p, err := contract.NewPrefill(tenantID, req.DocumentID)
	if err != nil {
		return nil, err
	}
	p.AnalysisID = req.AnalysisID
	p.ContractType = req.ContractType
	p.ContractNumber = req.ContractNumber
	p.CounterpartyName = req.CounterpartyName
	p.ContractTitle = req.ContractTitle
	p.EffectiveDate = req.EffectiveDate
	p.ExpiryDate = req.ExpiryDate
	p.Value = req.Value
	p.Currency = req.Currency
	if req.Confidence != nil {
		p.Confidence = req.Confidence
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Prefill stored",
		zap.String("prefill_id", p.ID.String()),
		zap.String("document_id", req.DocumentID.String()),
	)
	resp := ToPrefillResponse(p)
	return &resp, nil
}

// GetByID round-trips a stored prefill
func (s *PrefillService) GetByID(ctx context.Context, tenantID, prefillID uuid.UUID) (*PrefillResponse, error) {
	p, err := s.repo.FindByID(ctx, tenantID, prefillID)
	if err != nil {
		return nil, err
	}
	resp := ToPrefillResponse(p)
	return &resp, nil
}
