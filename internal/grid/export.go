package grid

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// ExportCSV renders the snapshot as CSV: a header row of column names
// followed by one record per row, cells stringified in column order.
// Values containing delimiters or newlines are quoted per RFC 4180.
func ExportCSV(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(snap.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(snap.Columns))
	for _, row := range snap.Rows {
		for i, col := range snap.Columns {
			record[i] = cellString(row[col])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
