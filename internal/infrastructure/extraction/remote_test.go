package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteExtractor_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("posts document and maps response", func(t *testing.T) {
		var gotAuth string
		var gotReq extractRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/extract", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"code": 0,
				"msg": "ok",
				"data": {
					"counterparty_name": "Acme Corp",
					"contract_title": "Master Services Agreement",
					"document_type": "service",
					"effective_date": "2025-01-15",
					"confidence": {"counterpartyName": 0.93, "contractTitle": 0.88}
				}
			}`))
		}))
		defer server.Close()

		extractor := NewRemoteExtractor(config.AnalysisConfig{
			ExtractorURL:     server.URL,
			ExtractorToken:   "secret-token",
			ExtractorTimeout: 5 * time.Second,
		})

		extracted, confidence, err := extractor.Extract(ctx, newExtractionDoc(t, "MSA"), strings.NewReader("raw pdf bytes"))
		require.NoError(t, err)

		assert.Equal(t, "Bearer secret-token", gotAuth)
		assert.Equal(t, "contract.pdf", gotReq.FileName)
		assert.Equal(t, "application/pdf", gotReq.ContentType)
		decoded, err := base64.StdEncoding.DecodeString(gotReq.Content)
		require.NoError(t, err)
		assert.Equal(t, "raw pdf bytes", string(decoded))

		assert.Equal(t, "Acme Corp", extracted.CounterpartyName)
		assert.Equal(t, "Master Services Agreement", extracted.ContractTitle)
		require.NotNil(t, extracted.EffectiveDate)
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *extracted.EffectiveDate)
		assert.Nil(t, extracted.TerminationDate)
		assert.InDelta(t, 0.93, confidence["counterpartyName"], 0.001)
	})

	t.Run("surfaces service errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"code": 42, "msg": "unsupported document"}`))
		}))
		defer server.Close()

		extractor := NewRemoteExtractor(config.AnalysisConfig{ExtractorURL: server.URL, ExtractorTimeout: 5 * time.Second})
		_, _, err := extractor.Extract(ctx, newExtractionDoc(t, "MSA"), strings.NewReader("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported document")
	})

	t.Run("surfaces HTTP failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		extractor := NewRemoteExtractor(config.AnalysisConfig{ExtractorURL: server.URL, ExtractorTimeout: 5 * time.Second})
		_, _, err := extractor.Extract(ctx, newExtractionDoc(t, "MSA"), strings.NewReader("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}
