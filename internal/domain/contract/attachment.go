package contract

import (
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentRole tags what an attached document is to the contract
type DocumentRole string

const (
	RoleMain      DocumentRole = "main"
	RoleAmendment DocumentRole = "amendment"
	RoleExhibit   DocumentRole = "exhibit"
	RoleAncillary DocumentRole = "ancillary"
	RoleOther     DocumentRole = "other"
)

// IsValid checks if the document role is a known value
func (r DocumentRole) IsValid() bool {
	switch r {
	case RoleMain, RoleAmendment, RoleExhibit, RoleAncillary, RoleOther:
		return true
	default:
		return false
	}
}

// DocumentLink attaches a document to a contract with a role tag.
// At most one link per contract carries IsPrimary; the (contract, document)
// pair is unique.
type DocumentLink struct {
	shared.TenantAggregateRoot
	ContractID    uuid.UUID
	DocumentID    uuid.UUID
	Role          DocumentRole
	IsPrimary     bool
	Notes         string
	EffectiveDate *time.Time
}

// NewDocumentLink creates a non-primary document link
func NewDocumentLink(tenantID, contractID, documentID uuid.UUID, role DocumentRole) (*DocumentLink, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT_ID", "Contract ID cannot be empty")
	}
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_ID", "Document ID cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_ROLE", "Invalid document role")
	}

	return &DocumentLink{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ContractID:          contractID,
		DocumentID:          documentID,
		Role:                role,
	}, nil
}

// SetNotes attaches free-form notes to the link
func (l *DocumentLink) SetNotes(notes string) error {
	if len(notes) > 2000 {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 2000 characters")
	}
	l.Notes = notes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// SetEffectiveDate sets the date the attachment takes effect
func (l *DocumentLink) SetEffectiveDate(date *time.Time) {
	l.EffectiveDate = date
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// MarkPrimary flags this link as the contract's primary document.
// The repository demotes any previous primary in the same transaction.
func (l *DocumentLink) MarkPrimary() {
	l.IsPrimary = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// ClearPrimary removes the primary flag
func (l *DocumentLink) ClearPrimary() {
	l.IsPrimary = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}
