// Package state persists the last-seen viewport of each chart study so a
// restarted host resumes without a spurious recompute.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/rustyeddy/vapstudy/vap"
)

var ErrNotFound = errors.New("viewport state not found")

// Store keeps one viewport per study key.
type Store interface {
	// Load returns ErrNotFound when key has never been saved.
	Load(ctx context.Context, key string) (vap.Viewport, error)
	Save(ctx context.Context, key string, vp vap.Viewport) error
	// Reset forgets key; the next Load reports ErrNotFound.
	Reset(ctx context.Context, key string) error
	Close() error
}

// LoadOrNew is Load with a missing key mapped to the never-observed
// viewport.
func LoadOrNew(ctx context.Context, s Store, key string) (vap.Viewport, error) {
	vp, err := s.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return vap.NewViewport(), nil
	}
	return vp, err
}

// Key builds the storage key for a study on a chart.
func Key(chart, symbol string) string {
	return chart + ":" + symbol
}

type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]vap.Viewport
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]vap.Viewport)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (vap.Viewport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vp, ok := s.m[key]
	if !ok {
		return vap.Viewport{}, ErrNotFound
	}
	return vp, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, vp vap.Viewport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = vp
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
