package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wizardBackend is a scripted API for wizard tests. It serves one stored
// contract with one obligation and records creations, patches,
// obligations, and attachments.
type wizardBackend struct {
	t            *testing.T
	contractID   uuid.UUID
	obligationID uuid.UUID
	creates      atomic.Int32
	patches      atomic.Int32
	obligations  atomic.Int32
	attachments  atomic.Int32
	lastPatch    atomic.Value
	lastAttach   atomic.Value
}

func newWizardBackend(t *testing.T) *wizardBackend {
	return &wizardBackend{t: t, contractID: uuid.New(), obligationID: uuid.New()}
}

func (b *wizardBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/contracts":
			b.creates.Add(1)
			var payload map[string]any
			require.NoError(b.t, json.NewDecoder(r.Body).Decode(&payload))
			respondData(b.t, w, http.StatusCreated, Contract{
				ID:               b.contractID,
				Type:             asString(payload["type"]),
				CounterpartyName: asString(payload["counterparty_name"]),
				Status:           "DRAFT",
			})
		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/api/v1/contracts/"):
			b.patches.Add(1)
			var payload map[string]any
			require.NoError(b.t, json.NewDecoder(r.Body).Decode(&payload))
			b.lastPatch.Store(payload)
			status := asString(payload["status"])
			if status == "" {
				status = "DRAFT"
			}
			respondData(b.t, w, http.StatusOK, Contract{ID: b.contractID, Status: status})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/contracts/"+b.contractID.String():
			respondData(b.t, w, http.StatusOK, Contract{
				ID:               b.contractID,
				Type:             "service",
				Status:           "DRAFT",
				ContractNumber:   "C-2026-041",
				CounterpartyName: "Initech LLC",
				Value:            "1200",
				Currency:         "USD",
			})
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/obligations"):
			respondData(b.t, w, http.StatusOK, []Obligation{{
				ID:         b.obligationID,
				ContractID: b.contractID,
				Title:      "License fee",
				Type:       "payment",
				Recurrence: "annual",
			}})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/obligations"):
			b.obligations.Add(1)
			respondData(b.t, w, http.StatusCreated, Obligation{ID: uuid.New(), ContractID: b.contractID})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/documents"):
			b.attachments.Add(1)
			var payload map[string]any
			require.NoError(b.t, json.NewDecoder(r.Body).Decode(&payload))
			b.lastAttach.Store(payload)
			respondData(b.t, w, http.StatusCreated, Attachment{ID: uuid.New(), ContractID: b.contractID, IsPrimary: true})
		default:
			b.t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			respondError(b.t, w, http.StatusNotFound, "ERR_NOT_FOUND", "no route")
		}
	})
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func TestWizardDetailsValidatedLocally(t *testing.T) {
	backend := newWizardBackend(t)
	c, _ := newTestClient(t, backend.handler(), Config{})

	w := c.NewWizard(uuid.New())
	err := w.SubmitDetails(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotNil(t, verr.FieldError("counterparty_name"))
	require.NotNil(t, verr.FieldError("type"))
	assert.Equal(t, StepDetails, w.Step())
	assert.Equal(t, int32(0), backend.creates.Load(), "validation failures must not reach the network")
}

func TestWizardRejectsInvertedDateRange(t *testing.T) {
	backend := newWizardBackend(t)
	c, _ := newTestClient(t, backend.handler(), Config{})

	w := c.NewWizard(uuid.Nil)
	w.SetType("service")
	w.SetCounterpartyName("Acme Corp")
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(-1, 0, 0)
	w.SetEffectiveDate(&start)
	w.SetExpiryDate(&end)

	err := w.SubmitDetails(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotNil(t, verr.FieldError("expiry_date"))
	assert.Equal(t, int32(0), backend.creates.Load())
}

func TestWizardCreatesOnceThenPatches(t *testing.T) {
	backend := newWizardBackend(t)
	c, _ := newTestClient(t, backend.handler(), Config{})

	w := c.NewWizard(uuid.Nil)
	w.SetType("service")
	w.SetCounterpartyName("Acme Corp")
	require.NoError(t, w.SubmitDetails(context.Background()))
	require.NotNil(t, w.ContractID())
	assert.Equal(t, StepObligations, w.Step())

	// Going back and resubmitting must not create a second contract
	w.Back()
	assert.Equal(t, StepDetails, w.Step())
	w.SetCounterpartyName("Acme Corporation")
	require.NoError(t, w.SubmitDetails(context.Background()))

	assert.Equal(t, int32(1), backend.creates.Load())
	assert.Equal(t, int32(1), backend.patches.Load())
	patch, _ := backend.lastPatch.Load().(map[string]any)
	assert.Equal(t, "Acme Corporation", asString(patch["counterparty_name"]))
}

func TestWizardBackKeepsEnteredData(t *testing.T) {
	c, _ := newTestClient(t, newWizardBackend(t).handler(), Config{})

	w := c.NewWizard(uuid.Nil)
	w.SetType("nda")
	w.SetCounterpartyName("Globex")
	require.NoError(t, w.SubmitDetails(context.Background()))

	w.SetObligations([]ObligationEntry{{Title: "Quarterly report", Type: "reporting", Recurrence: "quarterly"}})
	require.NoError(t, w.SubmitObligations())
	assert.Equal(t, StepReview, w.Step())

	w.Back()
	w.Back()
	assert.Equal(t, StepDetails, w.Step())
	assert.Equal(t, "Globex", w.Details().CounterpartyName)
	require.Len(t, w.Obligations(), 1)
	assert.Equal(t, "Quarterly report", w.Obligations()[0].Title)
}

func TestWizardPrefillNeverOverwritesEdits(t *testing.T) {
	c, _ := newTestClient(t, newWizardBackend(t).handler(), Config{})

	w := c.NewWizard(uuid.Nil)
	w.SetCounterpartyName("Manually Entered Ltd")

	w.ApplyPrefill(&Prefill{
		ContractType:     "service",
		CounterpartyName: "Extracted GmbH",
		Value:            "5000",
		Currency:         "CHF",
	})

	details := w.Details()
	assert.Equal(t, "Manually Entered Ltd", details.CounterpartyName, "edited fields must win over prefill")
	assert.Equal(t, "service", details.Type, "untouched fields take the prefill value")
	assert.Equal(t, "5000", details.Value)
	assert.Equal(t, "CHF", details.Currency)
}

func TestWizardObligationsValidatedLocally(t *testing.T) {
	c, _ := newTestClient(t, newWizardBackend(t).handler(), Config{})

	w := c.NewWizard(uuid.Nil)
	w.SetType("service")
	w.SetCounterpartyName("Acme Corp")
	require.NoError(t, w.SubmitDetails(context.Background()))

	w.SetObligations([]ObligationEntry{{Title: "", Type: "payment"}})
	err := w.SubmitObligations()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepObligations, w.Step())
}

func TestWizardReviewFailureKeepsStep(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	backend := newWizardBackend(t)
	inner := backend.handler()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() && r.Method == http.MethodPatch {
			respondError(t, w, http.StatusInternalServerError, "ERR_INTERNAL", "boom")
			return
		}
		inner.ServeHTTP(w, r)
	})
	c, _ := newTestClient(t, handler, Config{})

	w := c.NewWizard(uuid.Nil)
	w.SetType("service")
	w.SetCounterpartyName("Acme Corp")
	require.NoError(t, w.SubmitDetails(context.Background()))
	require.NoError(t, w.SubmitObligations())

	_, err := w.SubmitReview(context.Background())
	require.Error(t, err)
	assert.Equal(t, StepReview, w.Step(), "a failed finalization stays retryable")

	failing.Store(false)
	contract, err := w.SubmitReview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", contract.Status, "finishing the wizard keeps the contract a draft")
	assert.Equal(t, StepDone, w.Step())

	patch, _ := backend.lastPatch.Load().(map[string]any)
	_, patchedStatus := patch["status"]
	assert.False(t, patchedStatus, "the review submit persists draft fields without touching status")
}

func TestWizardEditSeedsFromExistingContract(t *testing.T) {
	backend := newWizardBackend(t)
	c, _ := newTestClient(t, backend.handler(), Config{})

	w, err := c.NewWizardForContract(context.Background(), backend.contractID)
	require.NoError(t, err)
	require.NotNil(t, w.ContractID())
	assert.Equal(t, backend.contractID, *w.ContractID())

	details := w.Details()
	assert.Equal(t, "service", details.Type)
	assert.Equal(t, "Initech LLC", details.CounterpartyName)
	assert.Equal(t, "C-2026-041", details.ContractNumber)
	assert.Equal(t, "1200", details.Value)
	assert.Equal(t, "USD", details.Currency)

	require.Len(t, w.Obligations(), 1)
	entry := w.Obligations()[0]
	require.NotNil(t, entry.ID)
	assert.Equal(t, backend.obligationID, *entry.ID)
	assert.Equal(t, "License fee", entry.Title)

	// Editing an existing contract patches, never creates
	w.SetCounterpartyName("Initech Holdings")
	require.NoError(t, w.SubmitDetails(context.Background()))
	assert.Equal(t, int32(0), backend.creates.Load())
	assert.Equal(t, int32(1), backend.patches.Load())
	patch, _ := backend.lastPatch.Load().(map[string]any)
	assert.Equal(t, "Initech Holdings", asString(patch["counterparty_name"]))

	// Obligations that already exist server-side are not recreated
	require.NoError(t, w.SubmitObligations())
	_, err = w.SubmitReview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepDone, w.Step())
	assert.Equal(t, int32(0), backend.obligations.Load())
}

func TestWizardCancelDiscardsDraft(t *testing.T) {
	c, _ := newTestClient(t, newWizardBackend(t).handler(), Config{})

	w := c.NewWizard(uuid.Nil)
	w.SetType("service")
	w.SetCounterpartyName("Acme Corp")
	require.NoError(t, w.SubmitDetails(context.Background()))

	w.Cancel()
	assert.Equal(t, StepDetails, w.Step())
	assert.Nil(t, w.ContractID())
	assert.Empty(t, w.Details().CounterpartyName)
}

func TestWizardRejectsConcurrentSubmits(t *testing.T) {
	release := make(chan struct{})
	backend := newWizardBackend(t)
	inner := backend.handler()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/v1/contracts" {
			<-release
		}
		inner.ServeHTTP(w, r)
	})
	c, _ := newTestClient(t, handler, Config{})

	w := c.NewWizard(uuid.Nil)
	w.SetType("service")
	w.SetCounterpartyName("Acme Corp")

	done := make(chan error, 1)
	go func() { done <- w.SubmitDetails(context.Background()) }()
	time.Sleep(20 * time.Millisecond)

	err := w.SubmitDetails(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
}

// The full intake flow: upload a contract PDF, wait for analysis, store a
// prefill, walk the wizard, and end with a draft contract whose source
// document is the primary attachment.
func TestIntakeFlowEndToEnd(t *testing.T) {
	documentID := uuid.New()
	analysisID := uuid.New()
	backend := newWizardBackend(t)
	wizardRoutes := backend.handler()
	var analysisPolls atomic.Int32

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/documents":
			respondData(t, w, http.StatusCreated, Document{ID: documentID, FileName: "msa.pdf", Type: "contract"})
		case r.Method == http.MethodPost && r.URL.Path == fmt.Sprintf("/api/v1/contracts/upload/analyze/%s", documentID):
			respondData(t, w, http.StatusAccepted, AnalysisResult{ID: analysisID, DocumentID: documentID, Status: AnalysisPending})
		case r.Method == http.MethodGet && r.URL.Path == fmt.Sprintf("/api/v1/contracts/upload/analysis/%s", analysisID):
			result := AnalysisResult{ID: analysisID, DocumentID: documentID, Status: AnalysisProcessing}
			if analysisPolls.Add(1) >= 2 {
				result.Status = AnalysisCompleted
				result.CounterpartyName = "Acme Corp"
				result.DocumentType = "service"
				result.Confidence = map[string]float64{"counterparty_name": 0.91}
			}
			respondData(t, w, http.StatusOK, result)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/contracts/prefill":
			respondData(t, w, http.StatusCreated, Prefill{
				ID:               uuid.New(),
				DocumentID:       documentID,
				ContractType:     "service",
				CounterpartyName: "Acme Corp",
			})
		default:
			wizardRoutes.ServeHTTP(w, r)
		}
	})
	c, _ := newTestClient(t, handler, Config{PollInterval: 10 * time.Millisecond, MaxWait: 2 * time.Second})

	handle, err := c.Upload(context.Background(), File{
		Name:        "msa.pdf",
		Size:        9,
		ContentType: "application/pdf",
		Content:     strings.NewReader("%PDF-1.7\n"),
	}, UploadMetadata{Title: "MSA", Type: "contract"}, UploadOptions{})
	require.NoError(t, err)
	doc, err := handle.Wait()
	require.NoError(t, err)

	analysis, err := c.RequestAnalysis(context.Background(), doc.ID)
	require.NoError(t, err)
	analysis, err = c.WaitForAnalysis(context.Background(), analysis.ID)
	require.NoError(t, err)
	require.Equal(t, AnalysisCompleted, analysis.Status)
	assert.Equal(t, ConfidenceHigh, c.ConfidenceBucket(analysis.Confidence["counterparty_name"]))

	prefill, err := c.CreatePrefill(context.Background(), analysis)
	require.NoError(t, err)

	w := c.NewWizard(doc.ID)
	w.ApplyPrefill(prefill)
	assert.Equal(t, "Acme Corp", w.Details().CounterpartyName)

	require.NoError(t, w.SubmitDetails(context.Background()))
	w.SetObligations([]ObligationEntry{{Title: "Annual fee", Type: "payment", Recurrence: "annual"}})
	require.NoError(t, w.SubmitObligations())

	contract, err := w.SubmitReview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", contract.Status)
	assert.Equal(t, int32(1), backend.obligations.Load())

	attach, _ := backend.lastAttach.Load().(map[string]any)
	require.NotNil(t, attach)
	assert.Equal(t, doc.ID.String(), asString(attach["document_id"]))
	assert.Equal(t, true, attach["is_primary"])
	assert.Equal(t, "main", asString(attach["role"]))
}
