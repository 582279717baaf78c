package contract

import (
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
)

// Prefill is a transient server-stored snapshot of extracted fields, keyed
// by id and used to seed the contract wizard without re-running analysis.
// The document id is mandatory; every contract field is optional.
type Prefill struct {
	shared.TenantAggregateRoot
	DocumentID       uuid.UUID
	AnalysisID       *uuid.UUID
	ContractType     string
	ContractNumber   string
	CounterpartyName string
	ContractTitle    string
	EffectiveDate    *time.Time
	ExpiryDate       *time.Time
	Value            string
	Currency         string
	Confidence       map[string]float64
}

// NewPrefill creates a prefill snapshot for a document
func NewPrefill(tenantID, documentID uuid.UUID) (*Prefill, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document ID is required for a prefill")
	}
	return &Prefill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DocumentID:          documentID,
		Confidence:          map[string]float64{},
	}, nil
}
