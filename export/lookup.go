package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// StudyLookup resolves an exported label to the study output it reads.
type StudyLookup interface {
	// Values returns the output array for label. ok is false when no study
	// is bound to the label.
	Values(label string) (values []float64, ok bool)
}

// Table is a StudyLookup over columns of precomputed values.
type Table struct {
	columns map[string][]float64
	rows    int
}

func NewTable() *Table {
	return &Table{columns: make(map[string][]float64)}
}

// Set binds label to values.
func (t *Table) Set(label string, values []float64) {
	t.columns[label] = values
	t.rows = max(t.rows, len(values))
}

func (t *Table) Values(label string) ([]float64, bool) {
	v, ok := t.columns[label]
	return v, ok
}

// Rows is the length of the longest column.
func (t *Table) Rows() int {
	return t.rows
}

// LoadTable reads a CSV file; see ReadTable.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses a CSV whose header row holds the labels and whose rows
// are bars in index order. Empty cells become NaN and are never exported.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([][]float64, len(header))
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			v := math.NaN()
			if cell != "" {
				if v, err = strconv.ParseFloat(cell, 64); err != nil {
					return nil, fmt.Errorf("line %d column %s: %w", line, header[i], err)
				}
			}
			cols[i] = append(cols[i], v)
		}
	}

	t := NewTable()
	for i, label := range header {
		t.Set(strings.TrimSpace(label), cols[i])
	}
	return t, nil
}
