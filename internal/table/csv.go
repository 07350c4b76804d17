package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV parses a CSV stream into a result set. The first record is the
// header; shorter data records are padded with empty cells and longer
// ones are truncated so every row matches the header width.
func ReadCSV(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}

	res := &Result{Columns: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", len(res.Rows)+2, err)
		}
		row := make([]string, len(header))
		copy(row, rec)
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// LoadCSV reads a CSV file into a result set.
func LoadCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
