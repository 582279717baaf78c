package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePrefillFromAnalysis(t *testing.T) {
	documentID := uuid.New()
	analysisID := uuid.New()
	effective := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	termination := time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/contracts/prefill", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, documentID.String(), payload["document_id"])
		assert.Equal(t, analysisID.String(), payload["analysis_id"])
		assert.Equal(t, "contract", payload["contract_type"])
		assert.Equal(t, "Acme Corp", payload["counterparty_name"])
		assert.Contains(t, payload, "expiry_date")
		conf, ok := payload["confidence"].(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 0.92, conf["counterparty_name"], 0.001)

		respondData(t, w, http.StatusCreated, Prefill{
			ID:               uuid.New(),
			DocumentID:       documentID,
			AnalysisID:       &analysisID,
			ContractType:     "contract",
			CounterpartyName: "Acme Corp",
		})
	})
	c, _ := newTestClient(t, handler, Config{})

	prefill, err := c.CreatePrefill(context.Background(), &AnalysisResult{
		ID:               analysisID,
		DocumentID:       documentID,
		Status:           AnalysisCompleted,
		CounterpartyName: "Acme Corp",
		DocumentType:     "contract",
		EffectiveDate:    &effective,
		TerminationDate:  &termination,
		Confidence:       map[string]float64{"counterparty_name": 0.92},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", prefill.CounterpartyName)
	assert.Equal(t, documentID, prefill.DocumentID)
}

func TestCreatePrefillRequiresDocument(t *testing.T) {
	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})
	c, _ := newTestClient(t, handler, Config{})

	_, err := c.CreatePrefill(context.Background(), &AnalysisResult{Status: AnalysisCompleted})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotNil(t, verr.FieldError("document_id"))
	assert.Equal(t, int32(0), requests.Load(), "missing document must be caught without a network call")
}

func TestAttachAnalyzedDocument(t *testing.T) {
	contractID := uuid.New()
	documentID := uuid.New()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, fmt.Sprintf("/api/v1/contracts/%s/documents", contractID), r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, documentID.String(), payload["document_id"])
		assert.Equal(t, "amendment", payload["role"])
		assert.Equal(t, false, payload["is_primary"])
		notes, _ := payload["notes"].(string)
		assert.Contains(t, notes, "counterparty_name=0.92")
		assert.Contains(t, notes, "effective_date=0.71")

		respondData(t, w, http.StatusCreated, Attachment{
			ID:         uuid.New(),
			ContractID: contractID,
			DocumentID: documentID,
			Role:       "amendment",
		})
	})
	c, _ := newTestClient(t, handler, Config{})

	link, err := c.AttachAnalyzedDocument(context.Background(), contractID, &AnalysisResult{
		DocumentID: documentID,
		Status:     AnalysisCompleted,
		Confidence: map[string]float64{"counterparty_name": 0.92, "effective_date": 0.71},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, documentID, link.DocumentID)
}

func TestAttachAnalyzedDocumentConflict(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(t, w, http.StatusConflict, "ALREADY_EXISTS", "document is already linked to this contract")
	})
	c, _ := newTestClient(t, handler, Config{})

	_, err := c.AttachAnalyzedDocument(context.Background(), uuid.New(), &AnalysisResult{
		DocumentID: uuid.New(),
		Status:     AnalysisCompleted,
	}, "exhibit")
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "ALREADY_EXISTS", cerr.Code)
}
