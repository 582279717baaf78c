package models

import (
	"encoding/json"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractModel is the persistence model for contracts
type ContractModel struct {
	TenantAggregateModel
	Type                string          `gorm:"type:varchar(30);not null;index"`
	Status              string          `gorm:"type:varchar(20);not null;index"`
	ContractNumber      string          `gorm:"type:varchar(100);index"`
	CounterpartyName    string          `gorm:"type:varchar(200);not null;index"`
	CounterpartyAddress string          `gorm:"type:text"`
	CounterpartyEmail   string          `gorm:"type:varchar(200)"`
	EffectiveDate       *time.Time
	ExpiryDate          *time.Time
	ExecutionDate       *time.Time
	RenewalDate         *time.Time
	Value               decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency            string          `gorm:"type:varchar(3)"`
	UpdatedBy           *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the model to a domain contract
func (m *ContractModel) ToDomain() *contract.Contract {
	c := &contract.Contract{
		Type:           contract.Type(m.Type),
		Status:         contract.Status(m.Status),
		ContractNumber: m.ContractNumber,
		Counterparty: contract.Counterparty{
			Name:    m.CounterpartyName,
			Address: m.CounterpartyAddress,
			Email:   m.CounterpartyEmail,
		},
		Dates: contract.Dates{
			Effective: m.EffectiveDate,
			Expiry:    m.ExpiryDate,
			Execution: m.ExecutionDate,
			Renewal:   m.RenewalDate,
		},
		Value:     m.Value,
		Currency:  m.Currency,
		UpdatedBy: m.UpdatedBy,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// ContractModelFromDomain converts a domain contract to the persistence model
func ContractModelFromDomain(c *contract.Contract) *ContractModel {
	m := &ContractModel{
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
		Value:               c.Value,
		Currency:            c.Currency,
		UpdatedBy:           c.UpdatedBy,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// ObligationModel is the persistence model for contract obligations
type ObligationModel struct {
	TenantAggregateModel
	ContractID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Responsible string    `gorm:"type:varchar(200)"`
	DueDate     *time.Time
	Recurrence  string `gorm:"type:varchar(20);not null;default:'none'"`
	Status      string `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (ObligationModel) TableName() string {
	return "obligations"
}

// ToDomain converts the model to a domain obligation
func (m *ObligationModel) ToDomain() *contract.Obligation {
	o := &contract.Obligation{
		ContractID:  m.ContractID,
		Title:       m.Title,
		Description: m.Description,
		Type:        contract.ObligationType(m.Type),
		Responsible: m.Responsible,
		DueDate:     m.DueDate,
		Recurrence:  contract.Recurrence(m.Recurrence),
		Status:      contract.ObligationStatus(m.Status),
	}
	m.PopulateTenantAggregateRoot(&o.TenantAggregateRoot)
	return o
}

// ObligationModelFromDomain converts a domain obligation to the persistence model
func ObligationModelFromDomain(o *contract.Obligation) *ObligationModel {
	m := &ObligationModel{
		ContractID:  o.ContractID,
		Title:       o.Title,
		Description: o.Description,
		Type:        string(o.Type),
		Responsible: o.Responsible,
		DueDate:     o.DueDate,
		Recurrence:  string(o.Recurrence),
		Status:      string(o.Status),
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	return m
}

// ContractDocumentModel links a contract to a document. The unique index on
// (contract_id, document_id) backs the duplicate-attachment conflict.
type ContractDocumentModel struct {
	TenantAggregateModel
	ContractID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contract_document_pair,priority:1"`
	DocumentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contract_document_pair,priority:2"`
	Role          string    `gorm:"type:varchar(20);not null"`
	IsPrimary     bool      `gorm:"not null;default:false"`
	Notes         string    `gorm:"type:text"`
	EffectiveDate *time.Time
}

// TableName returns the table name for GORM
func (ContractDocumentModel) TableName() string {
	return "contract_documents"
}

// ToDomain converts the model to a domain document link
func (m *ContractDocumentModel) ToDomain() *contract.DocumentLink {
	l := &contract.DocumentLink{
		ContractID:    m.ContractID,
		DocumentID:    m.DocumentID,
		Role:          contract.DocumentRole(m.Role),
		IsPrimary:     m.IsPrimary,
		Notes:         m.Notes,
		EffectiveDate: m.EffectiveDate,
	}
	m.PopulateTenantAggregateRoot(&l.TenantAggregateRoot)
	return l
}

// ContractDocumentModelFromDomain converts a domain link to the persistence model
func ContractDocumentModelFromDomain(l *contract.DocumentLink) *ContractDocumentModel {
	m := &ContractDocumentModel{
		ContractID:    l.ContractID,
		DocumentID:    l.DocumentID,
		Role:          string(l.Role),
		IsPrimary:     l.IsPrimary,
		Notes:         l.Notes,
		EffectiveDate: l.EffectiveDate,
	}
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	return m
}

// ContractPrefillModel is the persistence model for wizard prefill snapshots
type ContractPrefillModel struct {
	TenantAggregateModel
	DocumentID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	AnalysisID       *uuid.UUID `gorm:"type:uuid"`
	ContractType     string     `gorm:"type:varchar(30)"`
	ContractNumber   string     `gorm:"type:varchar(100)"`
	CounterpartyName string     `gorm:"type:varchar(200)"`
	ContractTitle    string     `gorm:"type:varchar(255)"`
	EffectiveDate    *time.Time
	ExpiryDate       *time.Time
	Value            string `gorm:"type:varchar(40)"`
	Currency         string `gorm:"type:varchar(3)"`
	Confidence       string `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (ContractPrefillModel) TableName() string {
	return "contract_prefills"
}

// ToDomain converts the model to a domain prefill
func (m *ContractPrefillModel) ToDomain() *contract.Prefill {
	p := &contract.Prefill{
		DocumentID:       m.DocumentID,
		AnalysisID:       m.AnalysisID,
		ContractType:     m.ContractType,
		ContractNumber:   m.ContractNumber,
		CounterpartyName: m.CounterpartyName,
		ContractTitle:    m.ContractTitle,
		EffectiveDate:    m.EffectiveDate,
		ExpiryDate:       m.ExpiryDate,
		Value:            m.Value,
		Currency:         m.Currency,
		Confidence:       map[string]float64{},
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	if m.Confidence != "" {
		_ = json.Unmarshal([]byte(m.Confidence), &p.Confidence)
	}
	return p
}

// ContractPrefillModelFromDomain converts a domain prefill to the persistence model
func ContractPrefillModelFromDomain(p *contract.Prefill) *ContractPrefillModel {
	confidence, err := json.Marshal(p.Confidence)
	if err != nil {
		confidence = []byte("{}")
	}
	m := &ContractPrefillModel{
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
		Confidence:       string(confidence),
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}
