package analysis

import (
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle state of an analysis job
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// IsTerminal returns true once the analysis can no longer change
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Extraction holds the structured fields pulled out of a document
type Extraction struct {
	CounterpartyName string
	ContractTitle    string
	DocumentType     string
	EffectiveDate    *time.Time
	TerminationDate  *time.Time
}

// Result is the aggregate for one extraction job, associated 1:1 with a
// document. Only the analysis worker mutates it; it is terminal once
// COMPLETED or FAILED.
type Result struct {
	shared.TenantAggregateRoot
	DocumentID          uuid.UUID
	Status              Status
	Extracted           Extraction
	Confidence          map[string]float64
	ErrorMessage        string
	SuggestedContractID *uuid.UUID
	CompletedAt         *time.Time
}

// NewResult creates a pending analysis for a document
func NewResult(tenantID, documentID uuid.UUID) (*Result, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_ID", "Document ID cannot be empty")
	}
	return &Result{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DocumentID:          documentID,
		Status:              StatusPending,
		Confidence:          map[string]float64{},
	}, nil
}

// Start moves a pending analysis into processing
func (r *Result) Start() error {
	if r.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Analysis can only start from PENDING")
	}
	r.Status = StatusProcessing
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Complete records the extraction output and marks the analysis terminal
func (r *Result) Complete(extracted Extraction, confidence map[string]float64, suggestedContractID *uuid.UUID) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Analysis is already terminal")
	}
	for field, score := range confidence {
		if score < 0 || score > 1 {
			return shared.NewDomainError("INVALID_CONFIDENCE", "Confidence for "+field+" must be within [0,1]")
		}
	}

	now := time.Now()
	r.Status = StatusCompleted
	r.Extracted = extracted
	r.Confidence = confidence
	r.SuggestedContractID = suggestedContractID
	r.ErrorMessage = ""
	r.CompletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// Retry resets a failed analysis back to PENDING so the extraction can
// run again. Completed analyses cannot be retried.
func (r *Result) Retry() error {
	if r.Status != StatusFailed {
		return shared.NewDomainError("INVALID_STATE", "Only a FAILED analysis can be retried")
	}
	r.Status = StatusPending
	r.ErrorMessage = ""
	r.Confidence = map[string]float64{}
	r.CompletedAt = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Fail marks the analysis terminal with an error description instead of field data
func (r *Result) Fail(message string) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Analysis is already terminal")
	}
	if message == "" {
		message = "analysis failed"
	}

	now := time.Now()
	r.Status = StatusFailed
	r.ErrorMessage = message
	r.Extracted = Extraction{}
	r.Confidence = map[string]float64{}
	r.SuggestedContractID = nil
	r.CompletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}
