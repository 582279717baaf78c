package contract

import (
	"context"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles contract CRUD
type Service struct {
	repo   contract.Repository
	logger *zap.Logger
}

// NewService creates a new contract Service
func NewService(repo contract.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create creates a contract in DRAFT status (unless the request names one)
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, userID *uuid.UUID, req CreateContractRequest) (*ContractResponse, error) {
	c, err := contract.New(tenantID, contract.Type(req.Type), req.CounterpartyName)
	if err != nil {
		return nil, err
	}

	if req.CounterpartyAddress != "" || req.CounterpartyEmail != "" {
		if err := c.SetCounterparty(req.CounterpartyName, req.CounterpartyAddress, req.CounterpartyEmail); err != nil {
			return nil, err
		}
	}
	if err := c.SetDates(contract.Dates{
		Effective: req.EffectiveDate,
		Expiry:    req.ExpiryDate,
		Execution: req.ExecutionDate,
		Renewal:   req.RenewalDate,
	}); err != nil {
		return nil, err
	}
	if req.Value != "" || req.Currency != "" {
		value, err := parseValue(req.Value)
		if err != nil {
			return nil, err
		}
		if err := c.SetValue(value, req.Currency); err != nil {
			return nil, err
		}
	}
	if req.ContractNumber != "" {
		if err := c.SetContractNumber(req.ContractNumber); err != nil {
			return nil, err
		}
	}
	if req.Status != "" {
		if err := c.SetStatus(contract.Status(req.Status)); err != nil {
			return nil, err
		}
	}
	if userID != nil {
		c.SetCreatedBy(*userID)
		c.SetUpdatedBy(*userID)
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Contract created",
		zap.String("contract_id", c.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("counterparty", c.Counterparty.Name),
	)
	resp := ToContractResponse(c)
	return &resp, nil
}

// GetByID retrieves a contract by ID
func (s *Service) GetByID(ctx context.Context, tenantID, contractID uuid.UUID) (*ContractResponse, error) {
	c, err := s.repo.FindByIDForTenant(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	resp := ToContractResponse(c)
	return &resp, nil
}

// List retrieves contracts with filtering and pagination
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter ContractListFilter) (shared.Paginated[ContractResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	repoFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		repoFilter.Filters["type"] = filter.Type
	}
	if filter.Counterparty != "" {
		repoFilter.Filters["counterparty"] = filter.Counterparty
	}
	if filter.ExpiresBefore != "" {
		t, err := time.Parse("2006-01-02", filter.ExpiresBefore)
		if err != nil {
			return shared.Paginated[ContractResponse]{}, shared.NewDomainError("INVALID_DATE", "expires_before must be YYYY-MM-DD")
		}
		repoFilter.Filters["expires_before"] = t
	}
	if filter.ExpiresAfter != "" {
		t, err := time.Parse("2006-01-02", filter.ExpiresAfter)
		if err != nil {
			return shared.Paginated[ContractResponse]{}, shared.NewDomainError("INVALID_DATE", "expires_after must be YYYY-MM-DD")
		}
		repoFilter.Filters["expires_after"] = t
	}

	contracts, err := s.repo.FindAllForTenant(ctx, tenantID, repoFilter)
	if err != nil {
		return shared.Paginated[ContractResponse]{}, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, repoFilter)
	if err != nil {
		return shared.Paginated[ContractResponse]{}, err
	}

	items := make([]ContractResponse, len(contracts))
	for i := range contracts {
		items[i] = ToContractResponse(&contracts[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Update edits a contract. Dates are replaced as a group so the ordering
// invariant is checked against the final state, not the patch.
func (s *Service) Update(ctx context.Context, tenantID, contractID uuid.UUID, userID *uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	c, err := s.repo.FindByIDForTenant(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if err := c.SetType(contract.Type(*req.Type)); err != nil {
			return nil, err
		}
	}

	if req.CounterpartyName != nil || req.CounterpartyAddress != nil || req.CounterpartyEmail != nil {
		name := c.Counterparty.Name
		if req.CounterpartyName != nil {
			name = *req.CounterpartyName
		}
		address := c.Counterparty.Address
		if req.CounterpartyAddress != nil {
			address = *req.CounterpartyAddress
		}
		email := c.Counterparty.Email
		if req.CounterpartyEmail != nil {
			email = *req.CounterpartyEmail
		}
		if err := c.SetCounterparty(name, address, email); err != nil {
			return nil, err
		}
	}

	dates := c.Dates
	if req.ClearDates {
		dates = contract.Dates{}
	}
	if req.EffectiveDate != nil {
		dates.Effective = req.EffectiveDate
	}
	if req.ExpiryDate != nil {
		dates.Expiry = req.ExpiryDate
	}
	if req.ExecutionDate != nil {
		dates.Execution = req.ExecutionDate
	}
	if req.RenewalDate != nil {
		dates.Renewal = req.RenewalDate
	}
	if err := c.SetDates(dates); err != nil {
		return nil, err
	}

	if req.Value != nil || req.Currency != nil {
		value := c.Value
		if req.Value != nil {
			value, err = parseValue(*req.Value)
			if err != nil {
				return nil, err
			}
		}
		currency := c.Currency
		if req.Currency != nil {
			currency = *req.Currency
		}
		if err := c.SetValue(value, currency); err != nil {
			return nil, err
		}
	}

	if req.ContractNumber != nil {
		if err := c.SetContractNumber(*req.ContractNumber); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := c.SetStatus(contract.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if userID != nil {
		c.SetUpdatedBy(*userID)
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToContractResponse(c)
	return &resp, nil
}

// Delete removes a contract
func (s *Service) Delete(ctx context.Context, tenantID, contractID uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, contractID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tenantID, contractID)
}

func parseValue(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, shared.NewDomainError("INVALID_VALUE", "Contract value must be a decimal number")
	}
	return value, nil
}
