// journal/journal.go
package journal

import "time"

// ChangeRecord is one multiplier transition published to a chart.
type ChangeRecord struct {
	ID      string
	Session string
	Time    time.Time
	Symbol  string
	First   int // visible range the value was computed for
	Last    int
	Mode    string
	Bars    int
	Old     int
	New     int
}

type Journal interface {
	RecordChange(ChangeRecord) error
	Close() error
}

// Discard drops every record.
type Discard struct{}

func (Discard) RecordChange(ChangeRecord) error { return nil }
func (Discard) Close() error                    { return nil }
