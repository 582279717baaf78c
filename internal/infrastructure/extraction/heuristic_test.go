package extraction

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractionDoc(t *testing.T, title string) *document.Document {
	t.Helper()
	doc, err := document.New(uuid.New(), title, "contract.pdf", document.TypeContract, 2048, "application/pdf", "documents/x", nil)
	require.NoError(t, err)
	return doc
}

func TestHeuristicExtractor_Extract(t *testing.T) {
	extractor := NewHeuristicExtractor()
	ctx := context.Background()

	t.Run("extracts labeled fields", func(t *testing.T) {
		content := strings.NewReader(`MASTER SERVICES AGREEMENT

This Master Services Agreement is entered into between Acme Corporation (the "Supplier") and BlueEarth AG.

Counterparty: Acme Corporation
Effective as of January 15, 2025.
This agreement terminates on 2027-01-14.
`)

		extracted, confidence, err := extractor.Extract(ctx, newExtractionDoc(t, "MSA"), content)
		require.NoError(t, err)

		assert.Equal(t, "Acme Corporation", extracted.CounterpartyName)
		assert.Equal(t, "MASTER SERVICES AGREEMENT", extracted.ContractTitle)
		assert.Equal(t, "service", extracted.DocumentType)
		require.NotNil(t, extracted.EffectiveDate)
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *extracted.EffectiveDate)
		require.NotNil(t, extracted.TerminationDate)
		assert.Equal(t, time.Date(2027, 1, 14, 0, 0, 0, 0, time.UTC), *extracted.TerminationDate)

		assert.GreaterOrEqual(t, confidence["counterpartyName"], 0.85)
		assert.Greater(t, confidence["effectiveDate"], 0.5)
	})

	t.Run("classifies NDA documents", func(t *testing.T) {
		content := strings.NewReader("MUTUAL NON-DISCLOSURE AGREEMENT between Beta GmbH and Gamma SA")

		extracted, confidence, err := extractor.Extract(ctx, newExtractionDoc(t, "NDA"), content)
		require.NoError(t, err)
		assert.Equal(t, "nda", extracted.DocumentType)
		assert.Equal(t, "Beta GmbH", extracted.CounterpartyName)
		assert.Greater(t, confidence["documentType"], 0.5)
	})

	t.Run("falls back to document title for unreadable content", func(t *testing.T) {
		content := strings.NewReader("\x00\x01\x02")

		extracted, confidence, err := extractor.Extract(ctx, newExtractionDoc(t, "Lease Draft"), content)
		require.NoError(t, err)
		assert.Equal(t, "Lease Draft", extracted.ContractTitle)
		assert.Less(t, confidence["contractTitle"], 0.5)
		assert.Equal(t, "other", extracted.DocumentType)
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := extractor.Extract(cancelled, newExtractionDoc(t, "X"), strings.NewReader("content"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
