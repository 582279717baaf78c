package client

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestAnalysis(t *testing.T) {
	documentID := uuid.New()
	analysisID := uuid.New()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, fmt.Sprintf("/api/v1/contracts/upload/analyze/%s", documentID), r.URL.Path)
		respondData(t, w, http.StatusAccepted, AnalysisResult{
			ID:         analysisID,
			DocumentID: documentID,
			Status:     AnalysisPending,
		})
	})
	c, _ := newTestClient(t, handler, Config{})

	result, err := c.RequestAnalysis(context.Background(), documentID)
	require.NoError(t, err)
	assert.Equal(t, analysisID, result.ID)
	assert.Equal(t, AnalysisPending, result.Status)
	assert.False(t, result.IsTerminal())
}

func TestWaitForAnalysisCompletes(t *testing.T) {
	analysisID := uuid.New()
	var polls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, fmt.Sprintf("/api/v1/contracts/upload/analysis/%s", analysisID), r.URL.Path)
		n := polls.Add(1)
		result := AnalysisResult{ID: analysisID, Status: AnalysisProcessing}
		if n >= 3 {
			result.Status = AnalysisCompleted
			result.CounterpartyName = "Acme Corp"
			result.Confidence = map[string]float64{"counterparty_name": 0.92}
		}
		respondData(t, w, http.StatusOK, result)
	})
	c, _ := newTestClient(t, handler, Config{PollInterval: 10 * time.Millisecond, MaxWait: 2 * time.Second})

	result, err := c.WaitForAnalysis(context.Background(), analysisID)
	require.NoError(t, err)
	assert.Equal(t, AnalysisCompleted, result.Status)
	assert.Equal(t, "Acme Corp", result.CounterpartyName)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestWaitForAnalysisReturnsFailedResult(t *testing.T) {
	analysisID := uuid.New()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondData(t, w, http.StatusOK, AnalysisResult{
			ID:           analysisID,
			Status:       AnalysisFailed,
			ErrorMessage: "text extraction failed",
		})
	})
	c, _ := newTestClient(t, handler, Config{PollInterval: 10 * time.Millisecond})

	result, err := c.WaitForAnalysis(context.Background(), analysisID)
	require.NoError(t, err, "a failed analysis is a result, not a transport error")
	assert.Equal(t, AnalysisFailed, result.Status)
	assert.Equal(t, "text extraction failed", result.ErrorMessage)
}

func TestWaitForAnalysisTimesOut(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondData(t, w, http.StatusOK, AnalysisResult{ID: uuid.New(), Status: AnalysisProcessing})
	})
	c, _ := newTestClient(t, handler, Config{PollInterval: 10 * time.Millisecond, MaxWait: 60 * time.Millisecond})

	_, err := c.WaitForAnalysis(context.Background(), uuid.New())
	var terr *TimeoutError
	require.ErrorAs(t, err, &terr)
}

func TestWaitForAnalysisHonorsContext(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondData(t, w, http.StatusOK, AnalysisResult{ID: uuid.New(), Status: AnalysisProcessing})
	})
	c, _ := newTestClient(t, handler, Config{PollInterval: 10 * time.Millisecond, MaxWait: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.WaitForAnalysis(ctx, uuid.New())
	var terr *TimeoutError
	require.ErrorAs(t, err, &terr)
}

func TestConfidencePolicyBuckets(t *testing.T) {
	policy := DefaultConfidencePolicy()
	tests := []struct {
		score float64
		want  ConfidenceBucket
	}{
		{0.95, ConfidenceHigh},
		{0.85, ConfidenceHigh},
		{0.84, ConfidenceMedium},
		{0.60, ConfidenceMedium},
		{0.59, ConfidenceLow},
		{0, ConfidenceLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.Bucket(tt.score), "score %.2f", tt.score)
	}

	strict := New(Config{Confidence: ConfidencePolicy{High: 0.95, Medium: 0.80}})
	assert.Equal(t, ConfidenceMedium, strict.ConfidenceBucket(0.90))
}
