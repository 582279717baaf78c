package models

import (
	"encoding/json"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/google/uuid"
)

// AnalysisResultModel is the persistence model for document analysis results
type AnalysisResultModel struct {
	TenantAggregateModel
	DocumentID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_analysis_tenant_document,priority:2"`
	Status              string     `gorm:"type:varchar(20);not null;index"`
	CounterpartyName    string     `gorm:"type:varchar(200)"`
	ContractTitle       string     `gorm:"type:varchar(255)"`
	DocumentType        string     `gorm:"type:varchar(30)"`
	EffectiveDate       *time.Time
	TerminationDate     *time.Time
	Confidence          string     `gorm:"type:jsonb;default:'{}'"`
	ErrorMessage        string     `gorm:"type:text"`
	SuggestedContractID *uuid.UUID `gorm:"type:uuid"`
	CompletedAt         *time.Time
}

// TableName returns the table name for GORM
func (AnalysisResultModel) TableName() string {
	return "analysis_results"
}

// ToDomain converts the model to a domain analysis result
func (m *AnalysisResultModel) ToDomain() *analysis.Result {
	r := &analysis.Result{
		DocumentID: m.DocumentID,
		Status:     analysis.Status(m.Status),
		Extracted: analysis.Extraction{
			CounterpartyName: m.CounterpartyName,
			ContractTitle:    m.ContractTitle,
			DocumentType:     m.DocumentType,
			EffectiveDate:    m.EffectiveDate,
			TerminationDate:  m.TerminationDate,
		},
		Confidence:          map[string]float64{},
		ErrorMessage:        m.ErrorMessage,
		SuggestedContractID: m.SuggestedContractID,
		CompletedAt:         m.CompletedAt,
	}
	m.PopulateTenantAggregateRoot(&r.TenantAggregateRoot)
	if m.Confidence != "" {
		_ = json.Unmarshal([]byte(m.Confidence), &r.Confidence)
	}
	return r
}

// AnalysisResultModelFromDomain converts a domain result to the persistence model
func AnalysisResultModelFromDomain(r *analysis.Result) *AnalysisResultModel {
	confidence, err := json.Marshal(r.Confidence)
	if err != nil {
		confidence = []byte("{}")
	}
	m := &AnalysisResultModel{
		DocumentID:          r.DocumentID,
		Status:              string(r.Status),
		CounterpartyName:    r.Extracted.CounterpartyName,
		ContractTitle:       r.Extracted.ContractTitle,
		DocumentType:        r.Extracted.DocumentType,
		EffectiveDate:       r.Extracted.EffectiveDate,
		TerminationDate:     r.Extracted.TerminationDate,
		Confidence:          string(confidence),
		ErrorMessage:        r.ErrorMessage,
		SuggestedContractID: r.SuggestedContractID,
		CompletedAt:         r.CompletedAt,
	}
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	return m
}
