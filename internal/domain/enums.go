package domain

// AnalysisMode selects how transcript content reaches the model.
type AnalysisMode string

const (
	// ModeText extracts the transcript text locally and embeds it in the prompt.
	ModeText AnalysisMode = "text"
	// ModeMultimodal uploads the PDF natively and lets the model OCR it.
	ModeMultimodal AnalysisMode = "multimodal"
)

// ParseMode converts a raw string into an AnalysisMode.
func ParseMode(s string) (AnalysisMode, bool) {
	switch AnalysisMode(s) {
	case ModeText, ModeMultimodal:
		return AnalysisMode(s), true
	}
	return "", false
}

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}

// TextSentiments is the sentiment vocabulary the text-mode prompt asks for.
var TextSentiments = []string{"Bullish", "Neutral", "Bearish"}

// MultimodalSentiments is the 5-point vocabulary the multimodal prompt asks for.
var MultimodalSentiments = []string{"Strong Bullish", "Bullish", "Neutral", "Bearish", "Strong Bearish"}

// KeyMetricNames lists the key_metrics fields the multimodal prompt requests,
// in display order.
var KeyMetricNames = []string{"revenue", "ebitda", "net_profit", "order_book", "margin_guidance"}
