package vap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name          string
		current, last Viewport
		want          Change
	}{
		{"same range", Viewport{10, 60}, Viewport{10, 60}, Unchanged},
		{"pan", Viewport{11, 61}, Viewport{10, 60}, Changed},
		{"zoom out on left", Viewport{5, 60}, Viewport{10, 60}, Changed},
		{"new bar on right", Viewport{10, 61}, Viewport{10, 60}, Changed},
		{"never observed", Viewport{0, 0}, NewViewport(), Changed},
		{"never observed negative start", Viewport{-20, 30}, NewViewport(), Changed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.current, tt.last))
		})
	}
}

func TestViewport(t *testing.T) {
	v := NewViewport()
	assert.False(t, v.Observed())
	assert.Equal(t, "[-1,-1]", v.String())

	v = Viewport{First: 3, Last: 43}
	assert.True(t, v.Observed())
	assert.Equal(t, 40, v.Span())
	assert.Equal(t, "changed", Changed.String())
	assert.Equal(t, "unchanged", Unchanged.String())
}
