package export

import (
	"fmt"
	"strings"
)

// Line is one record of an export file.
type Line struct {
	Value string
	Label string
	Color string
}

// String renders the record without the line terminator.
func (l Line) String() string {
	return l.Value + "," + l.Label + "," + l.Color
}

// Bytes renders the record as written to disk, CRLF terminated.
func (l Line) Bytes() []byte {
	return []byte(l.String() + "\r\n")
}

// Validate checks that the line round-trips through a naive comma split
// and that its color is in the palette.
func (l Line) Validate() error {
	if l.Value == "" {
		return fmt.Errorf("empty value")
	}
	if l.Label == "" {
		return fmt.Errorf("empty label")
	}
	for _, f := range []string{l.Value, l.Label} {
		if strings.ContainsAny(f, ",\r\n") {
			return fmt.Errorf("field %q contains a separator", f)
		}
	}
	if !IsColor(l.Color) {
		return fmt.Errorf("unknown color %q", l.Color)
	}
	return nil
}
