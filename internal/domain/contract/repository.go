package contract

import (
	"context"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for contracts
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Contract, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Contract, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	FindByCounterparty(ctx context.Context, tenantID uuid.UUID, name string) ([]Contract, error)
	Save(ctx context.Context, contract *Contract) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ObligationRepository defines persistence operations for obligations
type ObligationRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Obligation, error)
	FindByContract(ctx context.Context, tenantID, contractID uuid.UUID) ([]Obligation, error)
	Save(ctx context.Context, obligation *Obligation) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// DocumentLinkRepository defines persistence operations for contract-document links.
// Save must surface shared.ErrAlreadyExists when the (contract, document)
// pair is already linked, including under concurrent inserts.
type DocumentLinkRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*DocumentLink, error)
	FindByContract(ctx context.Context, tenantID, contractID uuid.UUID) ([]DocumentLink, error)
	FindByPair(ctx context.Context, tenantID, contractID, documentID uuid.UUID) (*DocumentLink, error)
	Save(ctx context.Context, link *DocumentLink) error
	SetPrimary(ctx context.Context, tenantID, contractID, linkID uuid.UUID) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// PrefillRepository defines persistence operations for wizard prefills
type PrefillRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Prefill, error)
	Save(ctx context.Context, prefill *Prefill) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
