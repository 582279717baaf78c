package contract

import (
	"strings"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
)

// ObligationType classifies the nature of an obligation
type ObligationType string

const (
	ObligationReporting   ObligationType = "reporting"
	ObligationPayment     ObligationType = "payment"
	ObligationDisclosure  ObligationType = "disclosure"
	ObligationCompliance  ObligationType = "compliance"
	ObligationOperational ObligationType = "operational"
	ObligationOther       ObligationType = "other"
)

// IsValid checks if the obligation type is a known value
func (t ObligationType) IsValid() bool {
	switch t {
	case ObligationReporting, ObligationPayment, ObligationDisclosure,
		ObligationCompliance, ObligationOperational, ObligationOther:
		return true
	default:
		return false
	}
}

// ObligationStatus represents the tracking state of an obligation
type ObligationStatus string

const (
	ObligationPending    ObligationStatus = "PENDING"
	ObligationInProgress ObligationStatus = "IN_PROGRESS"
	ObligationCompleted  ObligationStatus = "COMPLETED"
	ObligationOverdue    ObligationStatus = "OVERDUE"
	ObligationCancelled  ObligationStatus = "CANCELLED"
)

// IsValid checks if the obligation status is a known value
func (s ObligationStatus) IsValid() bool {
	switch s {
	case ObligationPending, ObligationInProgress, ObligationCompleted,
		ObligationOverdue, ObligationCancelled:
		return true
	default:
		return false
	}
}

// Recurrence is the repeat pattern of a recurring obligation
type Recurrence string

const (
	RecurrenceNone       Recurrence = "none"
	RecurrenceMonthly    Recurrence = "monthly"
	RecurrenceQuarterly  Recurrence = "quarterly"
	RecurrenceSemiAnnual Recurrence = "semi_annual"
	RecurrenceAnnual     Recurrence = "annual"
)

// IsValid checks if the recurrence pattern is a known value
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceMonthly, RecurrenceQuarterly,
		RecurrenceSemiAnnual, RecurrenceAnnual:
		return true
	default:
		return false
	}
}

// Obligation is a duty owed under exactly one contract
type Obligation struct {
	shared.TenantAggregateRoot
	ContractID  uuid.UUID
	Title       string
	Description string
	Type        ObligationType
	Responsible string
	DueDate     *time.Time
	Recurrence  Recurrence
	Status      ObligationStatus
}

// NewObligation creates a pending obligation attached to a contract
func NewObligation(tenantID, contractID uuid.UUID, title string, obligationType ObligationType) (*Obligation, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT_ID", "Contract ID cannot be empty")
	}
	if err := validateObligationTitle(title); err != nil {
		return nil, err
	}
	if !obligationType.IsValid() {
		return nil, shared.NewDomainError("INVALID_OBLIGATION_TYPE", "Invalid obligation type")
	}

	return &Obligation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ContractID:          contractID,
		Title:               title,
		Type:                obligationType,
		Recurrence:          RecurrenceNone,
		Status:              ObligationPending,
	}, nil
}

// Update edits the obligation's editable fields
func (o *Obligation) Update(title, description, responsible string) error {
	if err := validateObligationTitle(title); err != nil {
		return err
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	if len(responsible) > 200 {
		return shared.NewDomainError("INVALID_RESPONSIBLE", "Responsible party cannot exceed 200 characters")
	}

	o.Title = title
	o.Description = description
	o.Responsible = responsible
	o.touch()
	return nil
}

// SetSchedule sets the due date and recurrence pattern
func (o *Obligation) SetSchedule(dueDate *time.Time, recurrence Recurrence) error {
	if !recurrence.IsValid() {
		return shared.NewDomainError("INVALID_RECURRENCE", "Invalid recurrence pattern")
	}
	o.DueDate = dueDate
	o.Recurrence = recurrence
	o.touch()
	return nil
}

// SetStatus transitions the obligation status
func (o *Obligation) SetStatus(status ObligationStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid obligation status")
	}
	o.Status = status
	o.touch()
	return nil
}

// SetType changes the obligation classification
func (o *Obligation) SetType(obligationType ObligationType) error {
	if !obligationType.IsValid() {
		return shared.NewDomainError("INVALID_OBLIGATION_TYPE", "Invalid obligation type")
	}
	o.Type = obligationType
	o.touch()
	return nil
}

func (o *Obligation) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

func validateObligationTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Obligation title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Obligation title cannot exceed 255 characters")
	}
	return nil
}
