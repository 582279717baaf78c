package analysis

import (
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/google/uuid"
)

// AnalysisResponse is the poll-endpoint view of an analysis job. Field
// presence depends on status: extracted data and confidence only appear
// once COMPLETED, the error message only once FAILED.
type AnalysisResponse struct {
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

// ToAnalysisResponse maps a domain result to its status-shaped response
func ToAnalysisResponse(r *analysis.Result) AnalysisResponse {
	resp := AnalysisResponse{
		ID:         r.ID,
		DocumentID: r.DocumentID,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}

	switch r.Status {
	case analysis.StatusCompleted:
		resp.CounterpartyName = r.Extracted.CounterpartyName
		resp.ContractTitle = r.Extracted.ContractTitle
		resp.DocumentType = r.Extracted.DocumentType
		resp.EffectiveDate = r.Extracted.EffectiveDate
		resp.TerminationDate = r.Extracted.TerminationDate
		resp.Confidence = r.Confidence
		resp.SuggestedContractID = r.SuggestedContractID
		resp.CompletedAt = r.CompletedAt
	case analysis.StatusFailed:
		resp.ErrorMessage = r.ErrorMessage
		resp.CompletedAt = r.CompletedAt
	}
	return resp
}
