package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"id", "session", "time", "symbol", "first_bar", "last_bar", "mode", "bars", "old", "new"}

type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

// NewCSV creates path, truncating any previous journal, and writes the
// header row.
func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordChange(c ChangeRecord) error {
	err := j.w.Write([]string{
		c.ID,
		c.Session,
		c.Time.UTC().Format(time.RFC3339),
		c.Symbol,
		strconv.Itoa(c.First),
		strconv.Itoa(c.Last),
		c.Mode,
		strconv.Itoa(c.Bars),
		strconv.Itoa(c.Old),
		strconv.Itoa(c.New),
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}
