package contract

import (
	"regexp"
	"strings"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a contract
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusActive      Status = "ACTIVE"
	StatusExpired     Status = "EXPIRED"
	StatusTerminated  Status = "TERMINATED"
	StatusRenewed     Status = "RENEWED"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusUnderReview, StatusActive, StatusExpired, StatusTerminated, StatusRenewed:
		return true
	default:
		return false
	}
}

// Type classifies the contract
type Type string

const (
	TypeService   Type = "service"
	TypePurchase  Type = "purchase"
	TypeLease     Type = "lease"
	TypeLicense   Type = "license"
	TypeEmployment Type = "employment"
	TypeNDA       Type = "nda"
	TypeOther     Type = "other"
)

// IsValid checks if the contract type is a known value
func (t Type) IsValid() bool {
	switch t {
	case TypeService, TypePurchase, TypeLease, TypeLicense, TypeEmployment, TypeNDA, TypeOther:
		return true
	default:
		return false
	}
}

// Counterparty holds the other party's identity and contact details
type Counterparty struct {
	Name    string
	Address string
	Email   string
}

// Dates groups the four contract date fields
type Dates struct {
	Effective *time.Time
	Expiry    *time.Time
	Execution *time.Time
	Renewal   *time.Time
}

// Contract is the aggregate root for a contract record. It owns its
// obligations and document links.
type Contract struct {
	shared.TenantAggregateRoot
	Type           Type
	Status         Status
	ContractNumber string
	Counterparty   Counterparty
	Dates          Dates
	Value          decimal.Decimal
	Currency       string
	UpdatedBy      *uuid.UUID
}

// New creates a new contract in DRAFT status
func New(tenantID uuid.UUID, contractType Type, counterpartyName string) (*Contract, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if !contractType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid contract type")
	}
	if err := validateCounterpartyName(counterpartyName); err != nil {
		return nil, err
	}

	return &Contract{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                contractType,
		Status:              StatusDraft,
		Counterparty:        Counterparty{Name: counterpartyName},
		Value:               decimal.Zero,
	}, nil
}

// SetCounterparty updates the counterparty details
func (c *Contract) SetCounterparty(name, address, email string) error {
	if err := validateCounterpartyName(name); err != nil {
		return err
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Counterparty address cannot exceed 500 characters")
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Counterparty = Counterparty{Name: name, Address: address, Email: email}
	c.touch()
	return nil
}

// SetDates updates the date fields. Expiry must not precede effective.
func (c *Contract) SetDates(dates Dates) error {
	if dates.Effective != nil && dates.Expiry != nil && dates.Expiry.Before(*dates.Effective) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Expiry date cannot precede effective date")
	}

	c.Dates = dates
	c.touch()
	return nil
}

// SetValue updates the monetary value and ISO currency code
func (c *Contract) SetValue(value decimal.Decimal, currency string) error {
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Contract value cannot be negative")
	}
	if currency != "" && !currencyPattern.MatchString(currency) {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a three-letter ISO code")
	}

	c.Value = value
	c.Currency = strings.ToUpper(currency)
	c.touch()
	return nil
}

// SetContractNumber updates the contract number
func (c *Contract) SetContractNumber(number string) error {
	if len(number) > 100 {
		return shared.NewDomainError("INVALID_CONTRACT_NUMBER", "Contract number cannot exceed 100 characters")
	}
	c.ContractNumber = number
	c.touch()
	return nil
}

// SetStatus transitions the contract status
func (c *Contract) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid contract status")
	}
	c.Status = status
	c.touch()
	return nil
}

// SetType updates the contract type
func (c *Contract) SetType(contractType Type) error {
	if !contractType.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Invalid contract type")
	}
	c.Type = contractType
	c.touch()
	return nil
}

// SetUpdatedBy records the user performing the current mutation
func (c *Contract) SetUpdatedBy(userID uuid.UUID) {
	c.UpdatedBy = &userID
}

func (c *Contract) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateCounterpartyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
