package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is positional tabular content: every row carries its cells in
// header order. AddRow pads short rows so ragged input cannot shift columns.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends one row, padded with empty cells up to the header width.
// Rows wider than the header are surfaced as an error at render time.
func (d *Dataset) AddRow(cells ...string) {
	for len(cells) < len(d.Headers) {
		cells = append(cells, "")
	}
	d.Rows = append(d.Rows, cells)
}

// CSVExporter renders a Dataset into CSV bytes, e.g. the class scoreboard.
type CSVExporter struct{}

// NewCSVExporter constructs a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for i, row := range data.Rows {
		if len(row) > len(data.Headers) {
			return nil, fmt.Errorf("csv row %d has %d cells for %d headers", i+1, len(row), len(data.Headers))
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
