package xlsxexport

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"callsight/internal/domain"
)

const sheetName = "Analysis"

// placeholder fills cells for fields the model did not return.
const placeholder = "N/A"

// metricLabels maps key_metrics field names to their display labels,
// in the same order as domain.KeyMetricNames.
var metricLabels = map[string]string{
	"revenue":         "Revenue",
	"ebitda":          "EBITDA",
	"net_profit":      "Net Profit",
	"order_book":      "Order Book",
	"margin_guidance": "Margin Guidance",
}

// Writer renders an analysis record into a two-column spreadsheet.
type Writer struct {
	f   *excelize.File
	row int
}

// NewWriter creates a Writer with an empty workbook.
func NewWriter() *Writer {
	f := excelize.NewFile()
	_ = f.SetSheetName("Sheet1", sheetName)
	return &Writer{f: f, row: 1}
}

// WriteRecord writes the record as label/value rows. Missing fields are
// filled with the display placeholder, never skipped, so every export has
// the same shape.
func (w *Writer) WriteRecord(rec *domain.AnalysisRecord, mode domain.AnalysisMode) error {
	if err := w.writeRow("Sentiment", valueOrPlaceholder(rec.Sentiment)); err != nil {
		return err
	}
	if err := w.writeRow("Confidence Score", strconv.Itoa(rec.ConfidenceScore)); err != nil {
		return err
	}
	if err := w.writeRow("Summary", valueOrPlaceholder(rec.Summary)); err != nil {
		return err
	}
	if err := w.writeList("Positive", rec.Positives); err != nil {
		return err
	}
	if err := w.writeList("Negative", rec.Negatives); err != nil {
		return err
	}
	if err := w.writeRow("Outlook", valueOrPlaceholder(rec.Outlook)); err != nil {
		return err
	}

	if mode != domain.ModeMultimodal {
		return nil
	}
	for _, name := range domain.KeyMetricNames {
		if err := w.writeRow(metricLabels[name], valueOrPlaceholder(rec.KeyMetrics[name])); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo serializes the workbook to w.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	return w.f.WriteTo(out)
}

// Close releases the workbook resources.
func (w *Writer) Close() error {
	return w.f.Close()
}

func (w *Writer) writeList(label string, items []string) error {
	if len(items) == 0 {
		return w.writeRow(label+"s", placeholder)
	}
	for i, item := range items {
		if err := w.writeRow(fmt.Sprintf("%s %d", label, i+1), item); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRow(label, value string) error {
	labelCell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	valueCell, err := excelize.CoordinatesToCellName(2, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheetName, labelCell, label); err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheetName, valueCell, value); err != nil {
		return err
	}
	w.row++
	return nil
}

func valueOrPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
