package port

// TextExtractor abstracts local transcript text extraction.
type TextExtractor interface {
	// ExtractText returns the concatenated plain text of every page in
	// page order. A page without extractable text contributes an empty
	// string rather than failing the whole document.
	ExtractText(data []byte) (string, error)
}
