package client

import (
	"time"

	"github.com/google/uuid"
)

// Document is the API representation of an uploaded document
type Document struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Title        string     `json:"title"`
	FileName     string     `json:"file_name"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Tags         []string   `json:"tags"`
	Confidential bool       `json:"confidential"`
	FileSize     int64      `json:"file_size"`
	ContentType  string     `json:"content_type"`
	UploadedBy   *uuid.UUID `json:"uploaded_by,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Analysis statuses
const (
	AnalysisPending    = "PENDING"
	AnalysisProcessing = "PROCESSING"
	AnalysisCompleted  = "COMPLETED"
	AnalysisFailed     = "FAILED"
)

// AnalysisResult is the API representation of a document analysis.
// Extracted fields and the confidence map are populated only once the
// status is COMPLETED; the error message only once FAILED.
type AnalysisResult struct {
	ID                  uuid.UUID          `json:"id"`
	DocumentID          uuid.UUID          `json:"document_id"`
	Status              string             `json:"status"`
	CounterpartyName    string             `json:"counterparty_name,omitempty"`
	ContractTitle       string             `json:"contract_title,omitempty"`
	DocumentType        string             `json:"document_type,omitempty"`
	EffectiveDate       *time.Time         `json:"effective_date,omitempty"`
	TerminationDate     *time.Time         `json:"termination_date,omitempty"`
	Confidence          map[string]float64 `json:"confidence,omitempty"`
	ErrorMessage        string             `json:"error_message,omitempty"`
	SuggestedContractID *uuid.UUID         `json:"suggested_contract_id,omitempty"`
	CompletedAt         *time.Time         `json:"completed_at,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

// IsTerminal reports whether the analysis reached a final state
func (a *AnalysisResult) IsTerminal() bool {
	return a.Status == AnalysisCompleted || a.Status == AnalysisFailed
}

// Prefill is a server-stored snapshot of extracted fields used to seed
// the wizard without re-running analysis
type Prefill struct {
	ID               uuid.UUID          `json:"id"`
	DocumentID       uuid.UUID          `json:"document_id"`
	AnalysisID       *uuid.UUID         `json:"analysis_id,omitempty"`
	ContractType     string             `json:"contract_type,omitempty"`
	ContractNumber   string             `json:"contract_number,omitempty"`
	CounterpartyName string             `json:"counterparty_name,omitempty"`
	ContractTitle    string             `json:"contract_title,omitempty"`
	EffectiveDate    *time.Time         `json:"effective_date,omitempty"`
	ExpiryDate       *time.Time         `json:"expiry_date,omitempty"`
	Value            string             `json:"value,omitempty"`
	Currency         string             `json:"currency,omitempty"`
	Confidence       map[string]float64 `json:"confidence,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// Contract is the API representation of a contract
type Contract struct {
	ID                  uuid.UUID  `json:"id"`
	Type                string     `json:"type"`
	Status              string     `json:"status"`
	ContractNumber      string     `json:"contract_number,omitempty"`
	CounterpartyName    string     `json:"counterparty_name"`
	CounterpartyAddress string     `json:"counterparty_address,omitempty"`
	CounterpartyEmail   string     `json:"counterparty_email,omitempty"`
	EffectiveDate       *time.Time `json:"effective_date,omitempty"`
	ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
	ExecutionDate       *time.Time `json:"execution_date,omitempty"`
	RenewalDate         *time.Time `json:"renewal_date,omitempty"`
	Value               string     `json:"value"`
	Currency            string     `json:"currency,omitempty"`
	Version             int        `json:"version"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Obligation is the API representation of a contract obligation
type Obligation struct {
	ID          uuid.UUID  `json:"id"`
	ContractID  uuid.UUID  `json:"contract_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Responsible string     `json:"responsible,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Recurrence  string     `json:"recurrence"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Attachment is the API representation of a contract-document link
type Attachment struct {
	ID            uuid.UUID  `json:"id"`
	ContractID    uuid.UUID  `json:"contract_id"`
	DocumentID    uuid.UUID  `json:"document_id"`
	Role          string     `json:"role"`
	IsPrimary     bool       `json:"is_primary"`
	Notes         string     `json:"notes,omitempty"`
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
