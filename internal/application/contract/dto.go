package contract

import (
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/google/uuid"
)

// CreateContractRequest is the payload for creating a contract
type CreateContractRequest struct {
	Type                string     `json:"type" binding:"required,oneof=service purchase lease license employment nda other"`
	CounterpartyName    string     `json:"counterparty_name" binding:"required,max=200"`
	CounterpartyAddress string     `json:"counterparty_address" binding:"omitempty,max=500"`
	CounterpartyEmail   string     `json:"counterparty_email" binding:"omitempty,email,max=200"`
	ContractNumber      string     `json:"contract_number" binding:"omitempty,max=100"`
	Status              string     `json:"status" binding:"omitempty,oneof=DRAFT UNDER_REVIEW ACTIVE EXPIRED TERMINATED RENEWED"`
	EffectiveDate       *time.Time `json:"effective_date"`
	ExpiryDate          *time.Time `json:"expiry_date"`
	ExecutionDate       *time.Time `json:"execution_date"`
	RenewalDate         *time.Time `json:"renewal_date"`
	Value               string     `json:"value" binding:"omitempty"`
	Currency            string     `json:"currency" binding:"omitempty,len=3"`
}

// UpdateContractRequest is the payload for editing a contract. All fields
// are optional; absent fields are left untouched.
type UpdateContractRequest struct {
	Type                *string    `json:"type" binding:"omitempty,oneof=service purchase lease license employment nda other"`
	CounterpartyName    *string    `json:"counterparty_name" binding:"omitempty,max=200"`
	CounterpartyAddress *string    `json:"counterparty_address" binding:"omitempty,max=500"`
	CounterpartyEmail   *string    `json:"counterparty_email" binding:"omitempty,max=200"`
	ContractNumber      *string    `json:"contract_number" binding:"omitempty,max=100"`
	Status              *string    `json:"status" binding:"omitempty,oneof=DRAFT UNDER_REVIEW ACTIVE EXPIRED TERMINATED RENEWED"`
	EffectiveDate       *time.Time `json:"effective_date"`
	ExpiryDate          *time.Time `json:"expiry_date"`
	ExecutionDate       *time.Time `json:"execution_date"`
	RenewalDate         *time.Time `json:"renewal_date"`
	ClearDates          bool       `json:"clear_dates"`
	Value               *string    `json:"value"`
	Currency            *string    `json:"currency" binding:"omitempty,len=3"`
}

// ContractResponse is the API representation of a contract
type ContractResponse struct {
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

// ContractListFilter captures list query parameters
type ContractListFilter struct {
	Search       string `form:"search"`
	Status       string `form:"status" binding:"omitempty,oneof=DRAFT UNDER_REVIEW ACTIVE EXPIRED TERMINATED RENEWED"`
	Type         string `form:"type" binding:"omitempty,oneof=service purchase lease license employment nda other"`
	Counterparty string `form:"counterparty"`
	ExpiresAfter string `form:"expires_after"`
	ExpiresBefore string `form:"expires_before"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToContractResponse maps a domain contract to its API representation
func ToContractResponse(c *contract.Contract) ContractResponse {
	return ContractResponse{
		ID:                  c.ID,
		Type:                string(c.Type),
		Status:              string(c.Status),
		ContractNumber:      c.ContractNumber,
		CounterpartyName:    c.Counterparty.Name,
		CounterpartyAddress: c.Counterparty.Address,
		CounterpartyEmail:   c.Counterparty.Email,
		EffectiveDate:       c.Dates.Effective,
		ExpiryDate:          c.Dates.Expiry,
		ExecutionDate:       c.Dates.Execution,
		RenewalDate:         c.Dates.Renewal,
		Value:               c.Value.String(),
		Currency:            c.Currency,
		Version:             c.Version,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// CreateObligationRequest is the payload for adding an obligation
type CreateObligationRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	Type        string     `json:"type" binding:"required,oneof=reporting payment disclosure compliance operational other"`
	Responsible string     `json:"responsible" binding:"omitempty,max=200"`
	DueDate     *time.Time `json:"due_date"`
	Recurrence  string     `json:"recurrence" binding:"omitempty,oneof=none monthly quarterly semi_annual annual"`
}

// UpdateObligationRequest is the payload for editing an obligation
type UpdateObligationRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Type        *string    `json:"type" binding:"omitempty,oneof=reporting payment disclosure compliance operational other"`
	Responsible *string    `json:"responsible" binding:"omitempty,max=200"`
	DueDate     *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due"`
	Recurrence  *string    `json:"recurrence" binding:"omitempty,oneof=none monthly quarterly semi_annual annual"`
	Status      *string    `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED OVERDUE CANCELLED"`
}

// ObligationResponse is the API representation of an obligation
type ObligationResponse struct {
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

// ToObligationResponse maps a domain obligation to its API representation
func ToObligationResponse(o *contract.Obligation) ObligationResponse {
	return ObligationResponse{
		ID:          o.ID,
		ContractID:  o.ContractID,
		Title:       o.Title,
		Description: o.Description,
		Type:        string(o.Type),
		Responsible: o.Responsible,
		DueDate:     o.DueDate,
		Recurrence:  string(o.Recurrence),
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// AttachDocumentRequest is the payload for linking a document to a contract
type AttachDocumentRequest struct {
	DocumentID    uuid.UUID  `json:"document_id" binding:"required"`
	Role          string     `json:"role" binding:"omitempty,oneof=main amendment exhibit ancillary other"`
	IsPrimary     bool       `json:"is_primary"`
	Notes         string     `json:"notes" binding:"omitempty,max=2000"`
	EffectiveDate *time.Time `json:"effective_date"`
}

// AttachmentResponse is the API representation of a contract-document link
type AttachmentResponse struct {
	ID            uuid.UUID  `json:"id"`
	ContractID    uuid.UUID  `json:"contract_id"`
	DocumentID    uuid.UUID  `json:"document_id"`
	Role          string     `json:"role"`
	IsPrimary     bool       `json:"is_primary"`
	Notes         string     `json:"notes,omitempty"`
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToAttachmentResponse maps a domain document link to its API representation
func ToAttachmentResponse(l *contract.DocumentLink) AttachmentResponse {
	return AttachmentResponse{
		ID:            l.ID,
		ContractID:    l.ContractID,
		DocumentID:    l.DocumentID,
		Role:          string(l.Role),
		IsPrimary:     l.IsPrimary,
		Notes:         l.Notes,
		EffectiveDate: l.EffectiveDate,
		CreatedAt:     l.CreatedAt,
	}
}

// CreatePrefillRequest is the payload for storing a wizard prefill
type CreatePrefillRequest struct {
	DocumentID       uuid.UUID          `json:"document_id" binding:"required"`
	AnalysisID       *uuid.UUID         `json:"analysis_id"`
	ContractType     string             `json:"contract_type" binding:"omitempty,oneof=service purchase lease license employment nda other"`
	ContractNumber   string             `json:"contract_number" binding:"omitempty,max=100"`
	CounterpartyName string             `json:"counterparty_name" binding:"omitempty,max=200"`
	ContractTitle    string             `json:"contract_title" binding:"omitempty,max=255"`
	EffectiveDate    *time.Time         `json:"effective_date"`
	ExpiryDate       *time.Time         `json:"expiry_date"`
	Value            string             `json:"value"`
	Currency         string             `json:"currency" binding:"omitempty,len=3"`
	Confidence       map[string]float64 `json:"confidence"`
}

// PrefillResponse round-trips the stored prefill fields
type PrefillResponse struct {
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

// ToPrefillResponse maps a domain prefill to its API representation
func ToPrefillResponse(p *contract.Prefill) PrefillResponse {
	return PrefillResponse{
		ID:               p.ID,
		DocumentID:       p.DocumentID,
		AnalysisID:       p.AnalysisID,
		ContractType:     p.ContractType,
		ContractNumber:   p.ContractNumber,
		CounterpartyName: p.CounterpartyName,
		ContractTitle:    p.ContractTitle,
		EffectiveDate:    p.EffectiveDate,
		ExpiryDate:       p.ExpiryDate,
		Value:            p.Value,
		Currency:         p.Currency,
		Confidence:       p.Confidence,
		CreatedAt:        p.CreatedAt,
	}
}
