package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadBarsCSV reads bars from a CSV file. See ReadBarsCSV for the format.
func LoadBarsCSV(path, instrument string) (*BarSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bs, err := ReadBarsCSV(f, instrument)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bs.Source = path
	return bs, nil
}

// ReadBarsCSV parses rows of
//
//	time,open,high,low,close[,volume]
//
// An optional header row starting with "time" is skipped. Rows are kept in
// file order; the row position becomes the bar index.
func ReadBarsCSV(r io.Reader, instrument string) (*BarSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	bs := NewBarSet(instrument, nil)
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(row) == 0 {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "time") {
			continue
		}
		b, err := parseBarRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bs.Append(b)
	}
	return bs, nil
}

func parseBarRow(row []string) (Bar, error) {
	if len(row) < 5 {
		return Bar{}, fmt.Errorf("expected at least 5 fields, got %d", len(row))
	}

	ts, err := parseBarTime(row[0])
	if err != nil {
		return Bar{}, err
	}

	var px [4]float64
	for i := range px {
		if px[i], err = parseFloat(row[i+1]); err != nil {
			return Bar{}, fmt.Errorf("bad price %q: %w", row[i+1], err)
		}
	}

	b := Bar{
		Time:  ts,
		Open:  px[0],
		High:  px[1],
		Low:   px[2],
		Close: px[3],
	}
	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		if b.Volume, err = parseFloat(row[5]); err != nil {
			return Bar{}, fmt.Errorf("bad volume %q: %w", row[5], err)
		}
	}
	if b.High < b.Low {
		return Bar{}, fmt.Errorf("high %v below low %v", b.High, b.Low)
	}
	return b, nil
}
