package contract

import (
	"context"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AttachmentService links documents to contracts
type AttachmentService struct {
	repo         contract.DocumentLinkRepository
	contractRepo contract.Repository
	docRepo      document.Repository
	logger       *zap.Logger
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(repo contract.DocumentLinkRepository, contractRepo contract.Repository, docRepo document.Repository, logger *zap.Logger) *AttachmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttachmentService{repo: repo, contractRepo: contractRepo, docRepo: docRepo, logger: logger}
}

// Attach links a document to a contract. A duplicate (contract, document)
// pair surfaces shared.ErrAlreadyExists, also when two requests race: the
// unique index decides the winner.
func (s *AttachmentService) Attach(ctx context.Context, tenantID, contractID uuid.UUID, req AttachDocumentRequest) (*AttachmentResponse, error) {
	if _, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, contractID); err != nil {
		return nil, err
	}
	if _, err := s.docRepo.FindByIDForTenant(ctx, tenantID, req.DocumentID); err != nil {
		return nil, err
	}

	role := contract.RoleMain
	if req.Role != "" {
		role = contract.DocumentRole(req.Role)
	}
	link, err := contract.NewDocumentLink(tenantID, contractID, req.DocumentID, role)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		if err := link.SetNotes(req.Notes); err != nil {
			return nil, err
		}
	}
	if req.EffectiveDate != nil {
		link.SetEffectiveDate(req.EffectiveDate)
	}

	if err := s.repo.Save(ctx, link); err != nil {
		return nil, err
	}

	if req.IsPrimary {
		if err := s.repo.SetPrimary(ctx, tenantID, contractID, link.ID); err != nil {
			return nil, err
		}
		link.MarkPrimary()
	}

	s.logger.Info("Document attached to contract",
		zap.String("contract_id", contractID.String()),
		zap.String("document_id", req.DocumentID.String()),
		zap.Bool("is_primary", link.IsPrimary),
	)
	resp := ToAttachmentResponse(link)
	return &resp, nil
}

// ListByContract returns a contract's document links, primary first
func (s *AttachmentService) ListByContract(ctx context.Context, tenantID, contractID uuid.UUID) ([]AttachmentResponse, error) {
	if _, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, contractID); err != nil {
		return nil, err
	}

	links, err := s.repo.FindByContract(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	items := make([]AttachmentResponse, len(links))
	for i := range links {
		items[i] = ToAttachmentResponse(&links[i])
	}
	return items, nil
}

// SetPrimary promotes one link to primary, demoting any previous one
func (s *AttachmentService) SetPrimary(ctx context.Context, tenantID, contractID, linkID uuid.UUID) (*AttachmentResponse, error) {
	if err := s.repo.SetPrimary(ctx, tenantID, contractID, linkID); err != nil {
		return nil, err
	}
	link, err := s.repo.FindByID(ctx, tenantID, linkID)
	if err != nil {
		return nil, err
	}
	resp := ToAttachmentResponse(link)
	return &resp, nil
}

// Detach removes a document link
func (s *AttachmentService) Detach(ctx context.Context, tenantID, linkID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID, linkID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tenantID, linkID)
}
