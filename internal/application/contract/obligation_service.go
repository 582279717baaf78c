package contract

import (
	"context"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObligationService handles obligations owned by a contract
type ObligationService struct {
	repo         contract.ObligationRepository
	contractRepo contract.Repository
	logger       *zap.Logger
}

// NewObligationService creates a new ObligationService
func NewObligationService(repo contract.ObligationRepository, contractRepo contract.Repository, logger *zap.Logger) *ObligationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObligationService{repo: repo, contractRepo: contractRepo, logger: logger}
}

// Create adds an obligation to a contract
func (s *ObligationService) Create(ctx context.Context, tenantID, contractID uuid.UUID, req CreateObligationRequest) (*ObligationResponse, error) {
	if _, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, contractID); err != nil {
		return nil, err
	}

	o, err := contract.NewObligation(tenantID, contractID, req.Title, contract.ObligationType(req.Type))
	if err != nil {
		return nil, err
	}
	if req.Description != "" || req.Responsible != "" {
		if err := o.Update(req.Title, req.Description, req.Responsible); err != nil {
			return nil, err
		}
	}
	recurrence := contract.RecurrenceNone
	if req.Recurrence != "" {
		recurrence = contract.Recurrence(req.Recurrence)
	}
	if req.DueDate != nil || recurrence != contract.RecurrenceNone {
		if err := o.SetSchedule(req.DueDate, recurrence); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToObligationResponse(o)
	return &resp, nil
}

// ListByContract returns a contract's obligations ordered by due date
func (s *ObligationService) ListByContract(ctx context.Context, tenantID, contractID uuid.UUID) ([]ObligationResponse, error) {
	if _, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, contractID); err != nil {
		return nil, err
	}

	obligations, err := s.repo.FindByContract(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	items := make([]ObligationResponse, len(obligations))
	for i := range obligations {
		items[i] = ToObligationResponse(&obligations[i])
	}
	return items, nil
}

// Update edits an obligation
func (s *ObligationService) Update(ctx context.Context, tenantID, obligationID uuid.UUID, req UpdateObligationRequest) (*ObligationResponse, error) {
	o, err := s.repo.FindByID(ctx, tenantID, obligationID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.Description != nil || req.Responsible != nil {
		title := o.Title
		if req.Title != nil {
			title = *req.Title
		}
		description := o.Description
		if req.Description != nil {
			description = *req.Description
		}
		responsible := o.Responsible
		if req.Responsible != nil {
			responsible = *req.Responsible
		}
		if err := o.Update(title, description, responsible); err != nil {
			return nil, err
		}
	}

	if req.Type != nil {
		if err := o.SetType(contract.ObligationType(*req.Type)); err != nil {
			return nil, err
		}
	}

	if req.DueDate != nil || req.ClearDue || req.Recurrence != nil {
		dueDate := o.DueDate
		if req.ClearDue {
			dueDate = nil
		}
		if req.DueDate != nil {
			dueDate = req.DueDate
		}
		recurrence := o.Recurrence
		if req.Recurrence != nil {
			recurrence = contract.Recurrence(*req.Recurrence)
		}
		if err := o.SetSchedule(dueDate, recurrence); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := o.SetStatus(contract.ObligationStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToObligationResponse(o)
	return &resp, nil
}

// Delete removes an obligation
func (s *ObligationService) Delete(ctx context.Context, tenantID, obligationID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID, obligationID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tenantID, obligationID)
}
