package indicators

import (
	"fmt"
	"time"
)

// Calendar splits bars into trading dates and the regular session (RTH)
// within each date. Bars on a date before Open are overnight bars.
type Calendar struct {
	Location *time.Location
	Open     time.Duration // offset from local midnight
	Close    time.Duration
}

// DefaultCalendar is the US equity index regular session, 09:30 to 16:00
// New York, expressed in UTC during daylight saving time.
func DefaultCalendar() Calendar {
	return Calendar{
		Location: time.UTC,
		Open:     13*time.Hour + 30*time.Minute,
		Close:    20 * time.Hour,
	}
}

// ParseCalendar builds a calendar from a zone name and "15:04" open and
// close times.
func ParseCalendar(zone, open, close string) (Calendar, error) {
	cal := DefaultCalendar()
	if zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return cal, fmt.Errorf("session timezone: %w", err)
		}
		cal.Location = loc
	}
	if open != "" {
		d, err := clockOffset(open)
		if err != nil {
			return cal, fmt.Errorf("session open: %w", err)
		}
		cal.Open = d
	}
	if close != "" {
		d, err := clockOffset(close)
		if err != nil {
			return cal, fmt.Errorf("session close: %w", err)
		}
		cal.Close = d
	}
	if cal.Close <= cal.Open {
		return cal, fmt.Errorf("session close %s is not after open %s", close, open)
	}
	return cal, nil
}

func clockOffset(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Date is local midnight of the trading date t falls on.
func (c Calendar) Date(t time.Time) time.Time {
	lt := t.In(c.loc())
	y, m, d := lt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc())
}

func (c Calendar) offset(t time.Time) time.Duration {
	return t.In(c.loc()).Sub(c.Date(t))
}

// Overnight reports whether t is before the regular session open.
func (c Calendar) Overnight(t time.Time) bool {
	return c.offset(t) < c.Open
}

// Regular reports whether t is inside the regular session.
func (c Calendar) Regular(t time.Time) bool {
	off := c.offset(t)
	return off >= c.Open && off < c.Close
}

// Week identifies the ISO week of t's trading date.
func (c Calendar) Week(t time.Time) int {
	y, w := c.Date(t).ISOWeek()
	return y*100 + w
}

// Month identifies the calendar month of t's trading date.
func (c Calendar) Month(t time.Time) int {
	d := c.Date(t)
	return d.Year()*100 + int(d.Month())
}
