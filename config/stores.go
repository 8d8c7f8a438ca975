package config

import (
	"fmt"
	"time"

	"github.com/rustyeddy/vapstudy/journal"
	"github.com/rustyeddy/vapstudy/state"
)

// OpenState builds the viewport store selected by State.Type.
func (c *Config) OpenState() (state.Store, error) {
	switch c.State.Type {
	case "", "memory":
		return state.NewMemoryStore(), nil
	case "sqlite":
		s, err := state.NewSQLiteStore(c.State.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		var ttl time.Duration
		if c.State.Redis.TTL != "" {
			d, err := time.ParseDuration(c.State.Redis.TTL)
			if err != nil {
				return nil, fmt.Errorf("state.redis.ttl: %w", err)
			}
			ttl = d
		}
		s, err := state.NewRedisStore(state.RedisConfig{
			Addr:     c.State.Redis.Addr,
			Password: c.State.Redis.Password,
			DB:       c.State.Redis.DB,
			Prefix:   c.State.Redis.Prefix,
			TTL:      ttl,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown state type %q", c.State.Type)
}

// OpenJournal builds the multiplier journal selected by Journal.Type.
func (c *Config) OpenJournal() (journal.Journal, error) {
	switch c.Journal.Type {
	case "", "none":
		return journal.Discard{}, nil
	case "csv":
		j, err := journal.NewCSV(c.Journal.Path)
		if err != nil {
			return nil, err
		}
		return j, nil
	case "sqlite":
		j, err := journal.NewSQLite(c.Journal.Path)
		if err != nil {
			return nil, err
		}
		return j, nil
	}
	return nil, fmt.Errorf("unknown journal type %q", c.Journal.Type)
}
