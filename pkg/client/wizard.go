package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Wizard steps
type Step string

const (
	StepDetails     Step = "details"
	StepObligations Step = "obligations"
	StepReview      Step = "review"
	StepDone        Step = "done"
)

// ErrSubmitInFlight is returned when a submit is requested while another
// one is still running
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// ContractDetails holds the first wizard step's form fields
type ContractDetails struct {
	Type             string
	CounterpartyName string
	ContractNumber   string
	EffectiveDate    *time.Time
	ExpiryDate       *time.Time
	Value            string
	Currency         string
}

// ObligationEntry is one obligation row in the second step. ID is set
// once the obligation has been persisted.
type ObligationEntry struct {
	ID          *uuid.UUID
	Title       string
	Description string
	Type        string
	Responsible string
	DueDate     *time.Time
	Recurrence  string
}

// Wizard drives the three-step contract creation flow: details,
// obligations, review. Submitting details creates the contract once and
// patches it on every later submit, so going back and forth never
// duplicates contracts. Finishing the review step persists the full
// draft along with its obligations and attaches the source document as
// the contract's primary document; the contract itself stays a draft.
type Wizard struct {
	client *Client

	mu          sync.Mutex
	step        Step
	contractID  *uuid.UUID
	details     ContractDetails
	obligations []ObligationEntry
	documentID  uuid.UUID
	edited      map[string]bool
	inFlight    bool
}

// NewWizard starts a wizard for the given source document. A zero
// document ID starts a wizard with no document to attach.
func (c *Client) NewWizard(documentID uuid.UUID) *Wizard {
	return &Wizard{
		client:     c,
		step:       StepDetails,
		documentID: documentID,
		edited:     make(map[string]bool),
	}
}

// NewWizardForContract opens the wizard against an existing contract.
// The three steps are seeded from the stored contract and its
// obligations, and the details submit takes the update path from the
// start. There is no source document to attach in this mode.
func (c *Client) NewWizardForContract(ctx context.Context, contractID uuid.UUID) (*Wizard, error) {
	existing, err := c.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	obligations, err := c.ListObligations(ctx, contractID)
	if err != nil {
		return nil, err
	}

	w := &Wizard{
		client: c,
		step:   StepDetails,
		edited: make(map[string]bool),
	}
	id := existing.ID
	w.contractID = &id
	w.details = ContractDetails{
		Type:             existing.Type,
		CounterpartyName: existing.CounterpartyName,
		ContractNumber:   existing.ContractNumber,
		EffectiveDate:    existing.EffectiveDate,
		ExpiryDate:       existing.ExpiryDate,
		Value:            existing.Value,
		Currency:         existing.Currency,
	}
	for _, o := range obligations {
		oid := o.ID
		w.obligations = append(w.obligations, ObligationEntry{
			ID:          &oid,
			Title:       o.Title,
			Description: o.Description,
			Type:        o.Type,
			Responsible: o.Responsible,
			DueDate:     o.DueDate,
			Recurrence:  o.Recurrence,
		})
	}
	return w, nil
}

// Step returns the current wizard step
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// ContractID returns the created contract's ID, nil before the details
// step has been submitted
func (w *Wizard) ContractID() *uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.contractID == nil {
		return nil
	}
	id := *w.contractID
	return &id
}

// Details returns a copy of the current details form
func (w *Wizard) Details() ContractDetails {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.details
}

// Obligations returns a copy of the current obligation entries
func (w *Wizard) Obligations() []ObligationEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]ObligationEntry, len(w.obligations))
	copy(out, w.obligations)
	return out
}

// SetType sets the contract type and marks the field as user-edited
func (w *Wizard) SetType(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.details.Type = v
	w.edited["type"] = true
}

// SetCounterpartyName sets the counterparty and marks it user-edited
func (w *Wizard) SetCounterpartyName(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.details.CounterpartyName = v
	w.edited["counterparty_name"] = true
}

// SetContractNumber sets the contract number and marks it user-edited
func (w *Wizard) SetContractNumber(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.details.ContractNumber = v
	w.edited["contract_number"] = true
}

// SetEffectiveDate sets the effective date and marks it user-edited
func (w *Wizard) SetEffectiveDate(v *time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.details.EffectiveDate = v
	w.edited["effective_date"] = true
}

// SetExpiryDate sets the expiry date and marks it user-edited
func (w *Wizard) SetExpiryDate(v *time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.details.ExpiryDate = v
	w.edited["expiry_date"] = true
}

// SetValue sets the contract value and currency and marks them edited
func (w *Wizard) SetValue(value, currency string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.details.Value = value
	w.details.Currency = currency
	w.edited["value"] = true
}

// ApplyPrefill seeds the details form from a stored prefill. Fields the
// user already edited are never overwritten.
func (w *Wizard) ApplyPrefill(p *Prefill) {
	if p == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.edited["type"] && p.ContractType != "" {
		w.details.Type = p.ContractType
	}
	if !w.edited["counterparty_name"] && p.CounterpartyName != "" {
		w.details.CounterpartyName = p.CounterpartyName
	}
	if !w.edited["contract_number"] && p.ContractNumber != "" {
		w.details.ContractNumber = p.ContractNumber
	}
	if !w.edited["effective_date"] && p.EffectiveDate != nil {
		w.details.EffectiveDate = p.EffectiveDate
	}
	if !w.edited["expiry_date"] && p.ExpiryDate != nil {
		w.details.ExpiryDate = p.ExpiryDate
	}
	if !w.edited["value"] && p.Value != "" {
		w.details.Value = p.Value
		w.details.Currency = p.Currency
	}
}

// validateDetails checks required fields without touching the network
func (w *Wizard) validateDetails() *ValidationError {
	var fieldErrs []FieldError
	if w.details.CounterpartyName == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "counterparty_name", Code: "required", Message: "counterparty name is required"})
	}
	if w.details.Type == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "type", Code: "required", Message: "contract type is required"})
	}
	if w.details.EffectiveDate != nil && w.details.ExpiryDate != nil && w.details.ExpiryDate.Before(*w.details.EffectiveDate) {
		fieldErrs = append(fieldErrs, FieldError{Field: "expiry_date", Code: "date_range", Message: "expiry date must not precede the effective date"})
	}
	if len(fieldErrs) == 0 {
		return nil
	}
	return &ValidationError{Message: "contract details are incomplete", FieldErrors: fieldErrs}
}

func (w *Wizard) beginSubmit(expected Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != expected {
		return &ValidationError{Message: "wizard is not on the " + string(expected) + " step"}
	}
	if w.inFlight {
		return ErrSubmitInFlight
	}
	w.inFlight = true
	return nil
}

func (w *Wizard) endSubmit() {
	w.mu.Lock()
	w.inFlight = false
	w.mu.Unlock()
}

// SubmitDetails validates the details form and persists it. Validation
// failures are returned without any network call and the wizard stays on
// the details step; so do server errors. The contract is created on the
// first successful submit and patched on later ones.
func (w *Wizard) SubmitDetails(ctx context.Context) error {
	if err := w.beginSubmit(StepDetails); err != nil {
		return err
	}
	defer w.endSubmit()

	w.mu.Lock()
	verr := w.validateDetails()
	details := w.details
	existing := w.contractID
	w.mu.Unlock()
	if verr != nil {
		return verr
	}

	if existing == nil {
		created, err := w.client.CreateContract(ctx, ContractDraft{
			Type:             details.Type,
			CounterpartyName: details.CounterpartyName,
			ContractNumber:   details.ContractNumber,
			EffectiveDate:    details.EffectiveDate,
			ExpiryDate:       details.ExpiryDate,
			Value:            details.Value,
			Currency:         details.Currency,
		})
		if err != nil {
			return err
		}
		w.mu.Lock()
		w.contractID = &created.ID
		w.step = StepObligations
		w.mu.Unlock()
		return nil
	}

	_, err := w.client.UpdateContract(ctx, *existing, detailsPatch(details))
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.step = StepObligations
	w.mu.Unlock()
	return nil
}

func detailsPatch(d ContractDetails) ContractPatch {
	patch := ContractPatch{
		Type:             &d.Type,
		CounterpartyName: &d.CounterpartyName,
		EffectiveDate:    d.EffectiveDate,
		ExpiryDate:       d.ExpiryDate,
	}
	if d.ContractNumber != "" {
		patch.ContractNumber = &d.ContractNumber
	}
	if d.Value != "" {
		patch.Value = &d.Value
	}
	if d.Currency != "" {
		patch.Currency = &d.Currency
	}
	return patch
}

// SetObligations replaces the draft obligation entries. Purely local;
// nothing is persisted until the review step completes.
func (w *Wizard) SetObligations(entries []ObligationEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.obligations = make([]ObligationEntry, len(entries))
	copy(w.obligations, entries)
}

// SubmitObligations advances to the review step. Obligation rows stay
// local until the final submit.
func (w *Wizard) SubmitObligations() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepObligations {
		return &ValidationError{Message: "wizard is not on the obligations step"}
	}
	for _, o := range w.obligations {
		if o.Title == "" || o.Type == "" {
			return &ValidationError{
				Message: "obligations are incomplete",
				FieldErrors: []FieldError{{Field: "obligations", Code: "required", Message: "every obligation needs a title and a type"}},
			}
		}
	}
	w.step = StepReview
	return nil
}

// SubmitReview finalizes the wizard: it persists the full draft via a
// contract update, persists the drafted obligations, and attaches the
// source document as the primary document. The contract keeps its draft
// status; activation is a separate lifecycle action. On any failure the
// wizard stays on the review step so the submit can be retried.
func (w *Wizard) SubmitReview(ctx context.Context) (*Contract, error) {
	if err := w.beginSubmit(StepReview); err != nil {
		return nil, err
	}
	defer w.endSubmit()

	w.mu.Lock()
	contractID := w.contractID
	details := w.details
	obligations := make([]ObligationEntry, len(w.obligations))
	copy(obligations, w.obligations)
	documentID := w.documentID
	w.mu.Unlock()

	if contractID == nil {
		return nil, &ValidationError{Message: "contract details were never submitted"}
	}

	updated, err := w.client.UpdateContract(ctx, *contractID, detailsPatch(details))
	if err != nil {
		return nil, err
	}

	for i, o := range obligations {
		if o.ID != nil {
			continue
		}
		created, err := w.client.CreateObligation(ctx, *contractID, ObligationDraft{
			Title:       o.Title,
			Description: o.Description,
			Type:        o.Type,
			Responsible: o.Responsible,
			DueDate:     o.DueDate,
			Recurrence:  o.Recurrence,
		})
		if err != nil {
			return nil, err
		}
		w.mu.Lock()
		w.obligations[i].ID = &created.ID
		w.mu.Unlock()
	}

	if documentID != uuid.Nil {
		_, err := w.client.AttachDocument(ctx, *contractID, AttachmentDraft{
			DocumentID: documentID,
			Role:       "main",
			IsPrimary:  true,
		})
		if err != nil {
			var conflict *ConflictError
			if !errors.As(err, &conflict) {
				return nil, err
			}
			// Already linked from an earlier attempt
		}
	}

	w.mu.Lock()
	w.step = StepDone
	w.mu.Unlock()
	return updated, nil
}

// Back moves one step backwards without losing any entered data
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepObligations:
		w.step = StepDetails
	case StepReview:
		w.step = StepObligations
	}
}

// Cancel discards the draft and resets the wizard to the details step.
// An already-created contract is left behind as a draft server-side.
func (w *Wizard) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepDetails
	w.contractID = nil
	w.details = ContractDetails{}
	w.obligations = nil
	w.edited = make(map[string]bool)
}
