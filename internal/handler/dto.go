package handler

import "callsight/internal/domain"

// placeholder is rendered for fields the model did not return. A decoded
// record is served as-is otherwise; nothing is repaired.
const placeholder = "N/A"

// AnalysisResponse is the rendered form of an AnalysisRecord.
type AnalysisResponse struct {
	Mode            domain.AnalysisMode `json:"mode"`
	Sentiment       string              `json:"sentiment"`
	ConfidenceScore int                 `json:"confidence_score"`
	Summary         string              `json:"summary"`
	Positives       []string            `json:"positives"`
	Negatives       []string            `json:"negatives"`
	Outlook         string              `json:"outlook"`
	KeyMetrics      map[string]string   `json:"key_metrics,omitempty"`
}

// toAnalysisResponse fills display placeholders for missing fields. Lists
// render empty rather than null; multimodal responses always carry all five
// key_metrics keys.
func toAnalysisResponse(record *domain.AnalysisRecord, mode domain.AnalysisMode) AnalysisResponse {
	resp := AnalysisResponse{
		Mode:            mode,
		Sentiment:       orPlaceholder(record.Sentiment),
		ConfidenceScore: record.ConfidenceScore,
		Summary:         orPlaceholder(record.Summary),
		Positives:       orEmpty(record.Positives),
		Negatives:       orEmpty(record.Negatives),
		Outlook:         orPlaceholder(record.Outlook),
	}
	if mode == domain.ModeMultimodal {
		metrics := make(map[string]string, len(domain.KeyMetricNames))
		for _, name := range domain.KeyMetricNames {
			if v, ok := record.KeyMetrics[name]; ok && v != "" {
				metrics[name] = v
			} else {
				metrics[name] = placeholder
			}
		}
		resp.KeyMetrics = metrics
	}
	return resp
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
