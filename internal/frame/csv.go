package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReadCSV builds a frame from CSV data. The first record is the header.
// Columns whose non-empty cells all parse as numbers become numeric;
// everything else stays a string column. Empty cells become nulls.
func ReadCSV(r io.Reader) (*Frame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading csv: no header row")
	}
	header := records[0]
	rows := records[1:]

	f := New()
	for j, name := range header {
		cells := make([]string, len(rows))
		for i, row := range rows {
			if j >= len(row) {
				return nil, fmt.Errorf("reading csv: row %d has %d fields, header has %d", i+1, len(row), len(header))
			}
			cells[i] = row[j]
		}
		if vals, nulls, ok := sniffNumeric(cells); ok {
			if err := f.AddNumericColumn(name, vals, nulls); err != nil {
				return nil, err
			}
			continue
		}
		if err := f.AddStringColumn(name, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// sniffNumeric parses the cells as a numeric column. It succeeds only when
// every non-empty cell parses and at least one cell is non-empty.
func sniffNumeric(cells []string) ([]float64, []bool, bool) {
	vals := make([]float64, len(cells))
	nulls := make([]bool, len(cells))
	seen := false
	for i, cell := range cells {
		if cell == "" {
			nulls[i] = true
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, nil, false
		}
		vals[i] = v
		seen = true
	}
	return vals, nulls, seen
}

// WriteCSV renders the frame as CSV: header row first, then one record per
// row. Null cells are written as empty fields.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(f.cols))
	for i, c := range f.cols {
		header[i] = c.name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	record := make([]string, len(f.cols))
	for i := 0; i < f.rows; i++ {
		for j, c := range f.cols {
			if c.nulls[i] {
				record[j] = ""
			} else {
				record[j] = c.cells[i]
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
