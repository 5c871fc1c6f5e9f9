package domain

// AnalysisRecord is the structured result of one transcript analysis.
// Field names mirror the JSON object the model is instructed to return.
// A record is never mutated after decoding; missing fields are rendered
// with placeholders by the display layer, not repaired here.
type AnalysisRecord struct {
	Sentiment       string            `json:"sentiment"`
	ConfidenceScore int               `json:"confidence_score"`
	Summary         string            `json:"summary"`
	Positives       []string          `json:"positives"`
	Negatives       []string          `json:"negatives"`
	Outlook         string            `json:"outlook"`
	KeyMetrics      map[string]string `json:"key_metrics,omitempty"`
}
