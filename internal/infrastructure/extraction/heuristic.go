package extraction

import (
	"bufio"
	"context"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
)

// maxScanBytes caps how much of a document the heuristic extractor reads.
// Key contract fields appear in the opening pages.
const maxScanBytes = 512 * 1024

var (
	betweenPattern      = regexp.MustCompile(`(?i)\bbetween\s+(.{3,80}?)\s+(?:\(|and\b|,)`)
	counterpartyPattern = regexp.MustCompile(`(?i)\b(?:counterparty|contracting party|supplier|vendor|client)\s*[:\-]\s*(.{3,80})`)
	effectivePattern    = regexp.MustCompile(`(?i)\beffective\s+(?:as\s+of\s+|date\s*[:\-]?\s*)?(.{4,40})`)
	terminationPattern  = regexp.MustCompile(`(?i)\b(?:terminat\w+|expir\w+)\s+(?:on\s+|date\s*[:\-]?\s*)?(.{4,40})`)
)

var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02.01.2006",
}

var typeKeywords = []struct {
	keyword string
	docType string
}{
	{"non-disclosure", "nda"},
	{"confidentiality agreement", "nda"},
	{"employment", "employment"},
	{"lease", "lease"},
	{"license", "license"},
	{"purchase", "purchase"},
	{"services", "service"},
	{"master services", "service"},
}

// HeuristicExtractor extracts contract fields with pattern scanning.
// It is the fallback when no remote extraction service is configured.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates a HeuristicExtractor
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

// Extract scans the document text for counterparty, title, type and dates
func (e *HeuristicExtractor) Extract(ctx context.Context, doc *document.Document, content io.Reader) (analysis.Extraction, map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return analysis.Extraction{}, nil, err
	}

	text, firstLine, err := readText(content)
	if err != nil {
		return analysis.Extraction{}, nil, err
	}

	extracted := analysis.Extraction{}
	confidence := make(map[string]float64)

	if m := betweenPattern.FindStringSubmatch(text); m != nil {
		extracted.CounterpartyName = cleanField(m[1])
		confidence["counterpartyName"] = 0.7
	}
	if m := counterpartyPattern.FindStringSubmatch(text); m != nil {
		extracted.CounterpartyName = cleanField(m[1])
		confidence["counterpartyName"] = 0.88
	}

	if firstLine != "" {
		extracted.ContractTitle = firstLine
		confidence["contractTitle"] = 0.65
	} else if doc.Title != "" {
		extracted.ContractTitle = doc.Title
		confidence["contractTitle"] = 0.4
	}

	extracted.DocumentType = "other"
	confidence["documentType"] = 0.3
	lower := strings.ToLower(text)
	for _, tk := range typeKeywords {
		if strings.Contains(lower, tk.keyword) {
			extracted.DocumentType = tk.docType
			confidence["documentType"] = 0.75
			break
		}
	}

	if m := effectivePattern.FindStringSubmatch(text); m != nil {
		if ts := parseDate(m[1]); ts != nil {
			extracted.EffectiveDate = ts
			confidence["effectiveDate"] = 0.8
		}
	}
	if m := terminationPattern.FindStringSubmatch(text); m != nil {
		if ts := parseDate(m[1]); ts != nil {
			extracted.TerminationDate = ts
			confidence["terminationDate"] = 0.8
		}
	}

	return extracted, confidence, nil
}

// readText reads up to maxScanBytes and returns the text plus the first
// non-empty plausible title line
func readText(content io.Reader) (string, string, error) {
	data, err := io.ReadAll(io.LimitReader(content, maxScanBytes))
	if err != nil {
		return "", "", err
	}
	text := string(data)

	firstLine := ""
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := cleanField(scanner.Text())
		if len(line) >= 8 && len(line) <= 120 && isMostlyPrintable(line) {
			firstLine = line
			break
		}
	}
	return text, firstLine, nil
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'.,;:`)
	return strings.Join(strings.Fields(s), " ")
}

func isMostlyPrintable(s string) bool {
	printable := 0
	for _, r := range s {
		if r >= 32 && r < 127 {
			printable++
		}
	}
	return printable*10 >= len(s)*8
}

func parseDate(s string) *time.Time {
	s = cleanField(s)
	// Try progressively shorter prefixes so trailing words don't break parsing
	words := strings.Fields(s)
	for end := len(words); end > 0; end-- {
		candidate := strings.Join(words[:end], " ")
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, candidate); err == nil {
				return &ts
			}
		}
	}
	return nil
}

var _ Extractor = (*HeuristicExtractor)(nil)
