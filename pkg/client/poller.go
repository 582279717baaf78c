package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ConfidenceBucket classifies an extraction confidence score
type ConfidenceBucket string

const (
	ConfidenceHigh   ConfidenceBucket = "high"
	ConfidenceMedium ConfidenceBucket = "medium"
	ConfidenceLow    ConfidenceBucket = "low"
)

// ConfidencePolicy maps raw confidence scores to buckets. A score at or
// above High is high, at or above Medium is medium, anything else low.
type ConfidencePolicy struct {
	High   float64
	Medium float64
}

// DefaultConfidencePolicy returns the standard thresholds
func DefaultConfidencePolicy() ConfidencePolicy {
	return ConfidencePolicy{High: 0.85, Medium: 0.60}
}

// Bucket classifies a single score
func (p ConfidencePolicy) Bucket(score float64) ConfidenceBucket {
	switch {
	case score >= p.High:
		return ConfidenceHigh
	case score >= p.Medium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ConfidenceBucket classifies a score using the client's policy
func (c *Client) ConfidenceBucket(score float64) ConfidenceBucket {
	return c.confidence.Bucket(score)
}

// RequestAnalysis asks the server to analyze an uploaded document.
// Requesting analysis for the same document again returns the existing
// record instead of creating a new one.
func (c *Client) RequestAnalysis(ctx context.Context, documentID uuid.UUID) (*AnalysisResult, error) {
	var result AnalysisResult
	path := fmt.Sprintf("/api/v1/contracts/upload/analyze/%s", documentID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAnalysisStatus fetches the current state of an analysis
func (c *Client) GetAnalysisStatus(ctx context.Context, analysisID uuid.UUID) (*AnalysisResult, error) {
	var result AnalysisResult
	path := fmt.Sprintf("/api/v1/contracts/upload/analysis/%s", analysisID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// WaitForAnalysis polls at a fixed interval until the analysis reaches a
// terminal state or the maximum wait elapses. Exceeding the wait returns
// a TimeoutError; the analysis itself may still complete server-side.
func (c *Client) WaitForAnalysis(ctx context.Context, analysisID uuid.UUID) (*AnalysisResult, error) {
	deadline := time.NewTimer(c.maxWait)
	defer deadline.Stop()
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	result, err := c.GetAnalysisStatus(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if result.IsTerminal() {
		return result, nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, classifyTransportError(ctx, ctx.Err())
		case <-deadline.C:
			return nil, &TimeoutError{Message: fmt.Sprintf("analysis %s did not finish within %s", analysisID, c.maxWait)}
		case <-ticker.C:
			result, err = c.GetAnalysisStatus(ctx, analysisID)
			if err != nil {
				return nil, err
			}
			if result.IsTerminal() {
				return result, nil
			}
		}
	}
}
