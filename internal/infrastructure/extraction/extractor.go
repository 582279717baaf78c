// Package extraction turns document content into structured contract fields.
package extraction

import (
	"context"
	"io"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
)

// Extractor derives contract fields from a document. Implementations
// return per-field confidence scores in [0, 1] keyed by the extraction
// field name (counterpartyName, contractTitle, documentType,
// effectiveDate, terminationDate).
type Extractor interface {
	Extract(ctx context.Context, doc *document.Document, content io.Reader) (analysis.Extraction, map[string]float64, error)
}
