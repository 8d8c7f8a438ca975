package market

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var estNoDST = time.FixedZone("EST", -5*60*60)

const layout = "20060102 150405"

// parseBarTime accepts RFC3339, "2006-01-02 15:04:05" (UTC), or the
// compact "20060102 150405" layout in EST without DST.
func parseBarTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(layout, s, estNoDST); err == nil {
		return t.UTC(), nil // normalize immediately
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
