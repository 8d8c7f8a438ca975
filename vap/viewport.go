package vap

import "fmt"

// Unset marks a viewport index that has never been observed.
const Unset = -1

// Viewport is a visible bar index range, first and last inclusive.
type Viewport struct {
	First int `json:"first" yaml:"first"`
	Last  int `json:"last" yaml:"last"`
}

// NewViewport returns the never-observed viewport.
func NewViewport() Viewport {
	return Viewport{First: Unset, Last: Unset}
}

// Observed reports whether v holds a range seen on a real tick.
func (v Viewport) Observed() bool {
	return v.First != Unset || v.Last != Unset
}

// Span is Last minus First.
func (v Viewport) Span() int {
	return v.Last - v.First
}

func (v Viewport) String() string {
	return fmt.Sprintf("[%d,%d]", v.First, v.Last)
}

type Change int

const (
	Unchanged Change = iota
	Changed
)

func (c Change) String() string {
	if c == Unchanged {
		return "unchanged"
	}
	return "changed"
}

// Detect compares the current visible range with the last one a recompute
// ran for. The never-observed viewport differs from every real range.
func Detect(current, last Viewport) Change {
	if current.First == last.First && current.Last == last.Last {
		return Unchanged
	}
	return Changed
}
