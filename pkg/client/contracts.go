package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ContractDraft carries the fields for creating a contract
type ContractDraft struct {
	Type                string     `json:"type"`
	CounterpartyName    string     `json:"counterparty_name"`
	CounterpartyAddress string     `json:"counterparty_address,omitempty"`
	CounterpartyEmail   string     `json:"counterparty_email,omitempty"`
	ContractNumber      string     `json:"contract_number,omitempty"`
	Status              string     `json:"status,omitempty"`
	EffectiveDate       *time.Time `json:"effective_date,omitempty"`
	ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
	Value               string     `json:"value,omitempty"`
	Currency            string     `json:"currency,omitempty"`
}

// ContractPatch carries a partial contract update; nil fields are left
// untouched server-side
type ContractPatch struct {
	Type             *string    `json:"type,omitempty"`
	CounterpartyName *string    `json:"counterparty_name,omitempty"`
	ContractNumber   *string    `json:"contract_number,omitempty"`
	Status           *string    `json:"status,omitempty"`
	EffectiveDate    *time.Time `json:"effective_date,omitempty"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
	Value            *string    `json:"value,omitempty"`
	Currency         *string    `json:"currency,omitempty"`
}

// ObligationDraft carries the fields for creating an obligation
type ObligationDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Responsible string     `json:"responsible,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Recurrence  string     `json:"recurrence,omitempty"`
}

// AttachmentDraft carries the fields for linking a document to a contract
type AttachmentDraft struct {
	DocumentID    uuid.UUID  `json:"document_id"`
	Role          string     `json:"role,omitempty"`
	IsPrimary     bool       `json:"is_primary"`
	Notes         string     `json:"notes,omitempty"`
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
}

// CreateContract creates a contract
func (c *Client) CreateContract(ctx context.Context, draft ContractDraft) (*Contract, error) {
	var out Contract
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/contracts", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContract fetches a contract by ID
func (c *Client) GetContract(ctx context.Context, id uuid.UUID) (*Contract, error) {
	var out Contract
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/v1/contracts/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContract applies a partial update to a contract
func (c *Client) UpdateContract(ctx context.Context, id uuid.UUID, patch ContractPatch) (*Contract, error) {
	var out Contract
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/contracts/%s", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateObligation adds an obligation to a contract
func (c *Client) CreateObligation(ctx context.Context, contractID uuid.UUID, draft ObligationDraft) (*Obligation, error) {
	var out Obligation
	path := fmt.Sprintf("/api/v1/contracts/%s/obligations", contractID)
	if err := c.doJSON(ctx, http.MethodPost, path, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListObligations returns a contract's obligations
func (c *Client) ListObligations(ctx context.Context, contractID uuid.UUID) ([]Obligation, error) {
	var out []Obligation
	path := fmt.Sprintf("/api/v1/contracts/%s/obligations", contractID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AttachDocument links a document to a contract
func (c *Client) AttachDocument(ctx context.Context, contractID uuid.UUID, draft AttachmentDraft) (*Attachment, error) {
	var out Attachment
	path := fmt.Sprintf("/api/v1/contracts/%s/documents", contractID)
	if err := c.doJSON(ctx, http.MethodPost, path, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDocument fetches a document by ID
func (c *Client) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var out Document
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/v1/documents/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
