package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/vapstudy/market"
)

// Kind is a scripted chart action.
type Kind string

const (
	KindTick     Kind = "TICK"     // no change, just a call
	KindView     Kind = "VIEW"     // arg1=first arg2=last
	KindActive   Kind = "ACTIVE"   // arg1=0|1
	KindDefaults Kind = "DEFAULTS" // reinitialize the study
	KindFinal    Kind = "FINAL"    // remove the study
	KindBar      Kind = "BAR"      // arg1..arg4=open,high,low,close arg5=volume (optional)
	KindTickSize Kind = "TICKSIZE" // arg1=tick size
)

// Event is one row of a session script. Every event is followed by one call
// into the study.
type Event struct {
	Time time.Time
	Kind Kind

	First, Last int
	Active      bool
	Bar         market.Bar
	TickSize    float64
}

// LoadScript reads a session script from a CSV file.
func LoadScript(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadScript(f)
}

// ReadScript parses session script rows:
//
//	time,event,arg1,arg2,arg3,arg4,arg5
//
// time is RFC3339 and may be empty. An empty event is a TICK. A leading
// header row starting with "time" is skipped.
func ReadScript(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'

	var events []Event
	n := 0 // records read, comments excluded
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return events, nil
		}
		n++
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		if n == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "time") {
			continue
		}
		ev, err := parseEvent(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n, err)
		}
		events = append(events, ev)
	}
}

func parseEvent(row []string) (Event, error) {
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	var ev Event
	if row[0] != "" {
		t, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return ev, fmt.Errorf("bad time %q: %w", row[0], err)
		}
		ev.Time = t
	}

	ev.Kind = KindTick
	if len(row) >= 2 && row[1] != "" {
		ev.Kind = Kind(strings.ToUpper(row[1]))
	}
	var args []string
	if len(row) > 2 {
		args = row[2:]
	}

	switch ev.Kind {
	case KindTick, KindDefaults, KindFinal:
		return ev, nil

	case KindView:
		if len(args) < 2 {
			return ev, fmt.Errorf("VIEW: need arg1=first arg2=last")
		}
		first, err := strconv.Atoi(args[0])
		if err != nil {
			return ev, fmt.Errorf("VIEW: bad first %q: %w", args[0], err)
		}
		last, err := strconv.Atoi(args[1])
		if err != nil {
			return ev, fmt.Errorf("VIEW: bad last %q: %w", args[1], err)
		}
		ev.First, ev.Last = first, last
		return ev, nil

	case KindActive:
		if len(args) < 1 {
			return ev, fmt.Errorf("ACTIVE: need arg1=0|1")
		}
		active, err := strconv.ParseBool(args[0])
		if err != nil {
			return ev, fmt.Errorf("ACTIVE: bad flag %q: %w", args[0], err)
		}
		ev.Active = active
		return ev, nil

	case KindBar:
		if len(args) < 4 {
			return ev, fmt.Errorf("BAR: need arg1..arg4=open,high,low,close")
		}
		var v [5]float64
		n := min(len(args), 5)
		for i := 0; i < n; i++ {
			if args[i] == "" && i == 4 {
				break
			}
			f, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return ev, fmt.Errorf("BAR: bad value %q: %w", args[i], err)
			}
			v[i] = f
		}
		if v[1] < v[2] {
			return ev, fmt.Errorf("BAR: high %v below low %v", v[1], v[2])
		}
		ev.Bar = market.Bar{Time: ev.Time, Open: v[0], High: v[1], Low: v[2], Close: v[3], Volume: v[4]}
		return ev, nil

	case KindTickSize:
		if len(args) < 1 {
			return ev, fmt.Errorf("TICKSIZE: need arg1=tick size")
		}
		tick, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return ev, fmt.Errorf("TICKSIZE: bad value %q: %w", args[0], err)
		}
		ev.TickSize = tick
		return ev, nil

	default:
		return ev, fmt.Errorf("unknown event %q", row[1])
	}
}

// Apply performs the event on c.
func (ev Event) Apply(c *Chart) {
	switch ev.Kind {
	case KindView:
		c.View(ev.First, ev.Last)
	case KindActive:
		c.SetActive(ev.Active)
	case KindDefaults:
		c.RequestDefaults()
	case KindFinal:
		c.Remove()
	case KindBar:
		c.AddBar(ev.Bar)
	case KindTickSize:
		c.SetTickSize(ev.TickSize)
	}
}
