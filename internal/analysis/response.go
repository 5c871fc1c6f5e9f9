package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"callsight/internal/domain"
)

// Models sometimes wrap their output in markdown code fences despite being
// told not to. Strip a leading ```json (or bare ```) and a trailing ```.
var fenceRe = regexp.MustCompile("```json\\s*|\\s*```")

// DecodeRecord strips code-fence markers from a raw model response and
// decodes it into an AnalysisRecord. An empty or undecodable response is
// ErrMalformedResponse; there is exactly one decode attempt and no field
// repair beyond the textual cleanup.
func DecodeRecord(raw string) (*domain.AnalysisRecord, error) {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrMalformedResponse)
	}

	var record domain.AnalysisRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %s)", domain.ErrMalformedResponse, err, truncate(cleaned, 500))
	}
	return &record, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
