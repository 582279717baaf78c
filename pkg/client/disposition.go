package client

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// CreatePrefill stores extracted analysis fields as a wizard prefill for
// a new contract. A zero document ID is rejected locally without a
// network call.
func (c *Client) CreatePrefill(ctx context.Context, analysis *AnalysisResult) (*Prefill, error) {
	if analysis == nil || analysis.DocumentID == uuid.Nil {
		return nil, &ValidationError{
			Message: "a document is required to create a prefill",
			FieldErrors: []FieldError{{
				Field:   "document_id",
				Code:    "required",
				Message: "document_id must be set",
			}},
		}
	}

	payload := map[string]any{
		"document_id": analysis.DocumentID,
	}
	if analysis.ID != uuid.Nil {
		payload["analysis_id"] = analysis.ID
	}
	if analysis.DocumentType != "" {
		payload["contract_type"] = analysis.DocumentType
	}
	if analysis.CounterpartyName != "" {
		payload["counterparty_name"] = analysis.CounterpartyName
	}
	if analysis.ContractTitle != "" {
		payload["contract_title"] = analysis.ContractTitle
	}
	if analysis.EffectiveDate != nil {
		payload["effective_date"] = analysis.EffectiveDate
	}
	if analysis.TerminationDate != nil {
		payload["expiry_date"] = analysis.TerminationDate
	}
	if len(analysis.Confidence) > 0 {
		payload["confidence"] = analysis.Confidence
	}

	var out Prefill
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/contracts/prefill", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPrefill fetches a stored prefill by ID
func (c *Client) GetPrefill(ctx context.Context, id uuid.UUID) (*Prefill, error) {
	var out Prefill
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/v1/contracts/prefill/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AttachAnalyzedDocument links an analyzed document to an existing
// contract as a non-primary amendment-style attachment, carrying the
// extraction confidence summary in the link notes.
func (c *Client) AttachAnalyzedDocument(ctx context.Context, contractID uuid.UUID, analysis *AnalysisResult, role string) (*Attachment, error) {
	if analysis == nil || analysis.DocumentID == uuid.Nil {
		return nil, &ValidationError{
			Message: "a document is required to attach",
			FieldErrors: []FieldError{{
				Field:   "document_id",
				Code:    "required",
				Message: "document_id must be set",
			}},
		}
	}
	if role == "" {
		role = "amendment"
	}

	draft := AttachmentDraft{
		DocumentID:    analysis.DocumentID,
		Role:          role,
		IsPrimary:     false,
		Notes:         confidenceSummary(analysis.Confidence),
		EffectiveDate: analysis.EffectiveDate,
	}
	return c.AttachDocument(ctx, contractID, draft)
}

func confidenceSummary(scores map[string]float64) string {
	if len(scores) == 0 {
		return ""
	}
	fields := make([]string, 0, len(scores))
	for field := range scores {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s=%.2f", field, scores[field]))
	}
	return "extraction confidence: " + strings.Join(parts, ", ")
}
