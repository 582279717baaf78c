package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/config"
)

// RemoteExtractor calls an external extraction service over HTTP
type RemoteExtractor struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRemoteExtractor creates a RemoteExtractor from the analysis configuration
func NewRemoteExtractor(cfg config.AnalysisConfig) *RemoteExtractor {
	return &RemoteExtractor{
		baseURL: cfg.ExtractorURL,
		token:   cfg.ExtractorToken,
		httpClient: &http.Client{
			Timeout: cfg.ExtractorTimeout,
		},
	}
}

// extractRequest is the payload sent to the extraction service
type extractRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"` // base64
}

// extractResponse is the extraction service response envelope
type extractResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    struct {
		CounterpartyName string             `json:"counterparty_name"`
		ContractTitle    string             `json:"contract_title"`
		DocumentType     string             `json:"document_type"`
		EffectiveDate    string             `json:"effective_date,omitempty"`
		TerminationDate  string             `json:"termination_date,omitempty"`
		Confidence       map[string]float64 `json:"confidence"`
	} `json:"data"`
}

// Extract posts the document to the extraction service and maps its response
func (e *RemoteExtractor) Extract(ctx context.Context, doc *document.Document, content io.Reader) (analysis.Extraction, map[string]float64, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return analysis.Extraction{}, nil, fmt.Errorf("failed to read document content: %w", err)
	}

	payload, err := json.Marshal(extractRequest{
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		Content:     base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return analysis.Extraction{}, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/extract", bytes.NewReader(payload))
	if err != nil {
		return analysis.Extraction{}, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return analysis.Extraction{}, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return analysis.Extraction{}, nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return analysis.Extraction{}, nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return analysis.Extraction{}, nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Code != 0 {
		return analysis.Extraction{}, nil, fmt.Errorf("extraction service error: %s", result.Message)
	}

	extracted := analysis.Extraction{
		CounterpartyName: result.Data.CounterpartyName,
		ContractTitle:    result.Data.ContractTitle,
		DocumentType:     result.Data.DocumentType,
		EffectiveDate:    parseServiceDate(result.Data.EffectiveDate),
		TerminationDate:  parseServiceDate(result.Data.TerminationDate),
	}
	confidence := result.Data.Confidence
	if confidence == nil {
		confidence = map[string]float64{}
	}
	return extracted, confidence, nil
}

func parseServiceDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

var _ Extractor = (*RemoteExtractor)(nil)
