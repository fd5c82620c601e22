// Package csv turns derived tables into formatted rows that can be printed
// or written to disk.
package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Table is a named header plus rows of already formatted cells.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

type FilterFunc[T any] func(T) bool

// Create formats records with row, skipping those rejected by filter.
func Create[T any](name string, header []string, records []T, row func(T) []string, filter FilterFunc[T]) Table {
	t := Table{Name: name, Header: header, Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		if filter == nil || filter(r) {
			t.Rows = append(t.Rows, row(r))
		}
	}
	return t
}

func (t Table) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the table as <dir>/<name>.csv and returns the path.
func (t Table) WriteFile(dir string) (string, error) {
	return t.WriteAs(filepath.Join(dir, t.Name+".csv"))
}

func (t Table) WriteAs(path string) (string, error) {
	data, err := t.Bytes()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
