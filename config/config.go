package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/vapstudy/export"
	"github.com/rustyeddy/vapstudy/indicators"
	"github.com/rustyeddy/vapstudy/logger"
	"github.com/rustyeddy/vapstudy/market"
	"github.com/rustyeddy/vapstudy/vap"
)

// Config represents the complete study host configuration
type Config struct {
	Chart   ChartConfig   `json:"chart" yaml:"chart" env:", prefix=CHART_"`
	Study   vap.Settings  `json:"study" yaml:"study" env:", prefix=STUDY_"`
	Export  ExportConfig  `json:"export" yaml:"export" env:", prefix=EXPORT_"`
	Journal JournalConfig `json:"journal" yaml:"journal" env:", prefix=JOURNAL_"`
	State   StateConfig   `json:"state" yaml:"state" env:", prefix=STATE_"`
	Logging logger.Config `json:"logging" yaml:"logging" env:", prefix=LOG_"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" env:", prefix=METRICS_"`
}

// ChartConfig describes the instrument on the chart. TickSize and
// ValueFormat fall back to the instrument table when unset.
type ChartConfig struct {
	ID          string              `json:"id" yaml:"id" env:"ID, overwrite"`
	Symbol      string              `json:"symbol" yaml:"symbol" env:"SYMBOL, overwrite"`
	TickSize    float64             `json:"tick_size,omitempty" yaml:"tick_size,omitempty" env:"TICK_SIZE, overwrite"`
	ValueFormat *market.ValueFormat `json:"value_format,omitempty" yaml:"value_format,omitempty"`
}

// ExportConfig contains export file parameters
type ExportConfig struct {
	Enabled  bool            `json:"enabled" yaml:"enabled" env:"ENABLED, overwrite"`
	Dir      string          `json:"dir" yaml:"dir" env:"DIR, overwrite"`
	Prefix   string          `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Interval string          `json:"interval" yaml:"interval" env:"INTERVAL, overwrite"` // e.g. "60s", "0s" for every call
	Series   []export.Series `json:"series,omitempty" yaml:"series,omitempty"`
	// Session drives the series computed from bars when no value table is
	// given.
	Session SessionConfig `json:"session" yaml:"session" env:", prefix=SESSION_"`
	Bands   float64       `json:"bands,omitempty" yaml:"bands,omitempty"`
}

// SessionConfig is the regular trading session, "15:04" clock times in
// Timezone.
type SessionConfig struct {
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty" env:"TIMEZONE, overwrite"`
	Open     string `json:"open" yaml:"open" env:"OPEN, overwrite"`
	Close    string `json:"close" yaml:"close" env:"CLOSE, overwrite"`
}

// Calendar parses the session into an indicators.Calendar.
func (e ExportConfig) Calendar() (indicators.Calendar, error) {
	return indicators.ParseCalendar(e.Session.Timezone, e.Session.Open, e.Session.Close)
}

// ParseInterval converts the interval string to time.Duration
func (e ExportConfig) ParseInterval() (time.Duration, error) {
	if e.Interval == "" {
		return export.DefaultInterval, nil
	}
	return time.ParseDuration(e.Interval)
}

// JournalConfig contains multiplier journal parameters
type JournalConfig struct {
	Type string `json:"type" yaml:"type" env:"TYPE, overwrite"` // "none", "csv" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty" env:"PATH, overwrite"`
}

// StateConfig selects where the last-seen viewport is kept
type StateConfig struct {
	Type  string      `json:"type" yaml:"type" env:"TYPE, overwrite"` // "memory", "sqlite" or "redis"
	Path  string      `json:"path,omitempty" yaml:"path,omitempty" env:"PATH, overwrite"`
	Redis RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty" env:", prefix=REDIS_"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr" env:"ADDR, overwrite"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" env:"PASSWORD, overwrite"`
	DB       int    `json:"db" yaml:"db" env:"DB, overwrite"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	TTL      string `json:"ttl,omitempty" yaml:"ttl,omitempty"`
}

type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty" env:"ADDR, overwrite"` // empty disables the endpoint
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Chart.Symbol == "" {
		return fmt.Errorf("chart.symbol is required")
	}
	if c.Chart.TickSize < 0 {
		return fmt.Errorf("chart.tick_size must not be negative")
	}
	if _, err := c.TickSize(); err != nil {
		return err
	}
	if c.Chart.ValueFormat != nil && !c.Chart.ValueFormat.Valid() {
		return fmt.Errorf("chart.value_format %d is not supported", *c.Chart.ValueFormat)
	}
	if err := c.Study.Validate(); err != nil {
		return fmt.Errorf("study: %w", err)
	}

	if d, err := c.Export.ParseInterval(); err != nil || d < 0 {
		return fmt.Errorf("export.interval must be a non-negative duration, got %q", c.Export.Interval)
	}
	if c.Export.Enabled && c.Export.Dir == "" {
		return fmt.Errorf("export.dir required when export is enabled")
	}
	if _, err := c.Export.Calendar(); err != nil {
		return fmt.Errorf("export.session: %w", err)
	}
	if c.Export.Bands < 0 {
		return fmt.Errorf("export.bands must not be negative")
	}
	for _, s := range c.Export.Series {
		if s.Label == "" {
			return fmt.Errorf("export.series entries need a label")
		}
		if !export.IsColor(s.Color) {
			return fmt.Errorf("export.series %s: unknown color %q", s.Label, s.Color)
		}
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv", "sqlite":
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path required for %s journal", c.Journal.Type)
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	switch c.State.Type {
	case "", "memory":
	case "sqlite":
		if c.State.Path == "" {
			return fmt.Errorf("state.path required for sqlite state")
		}
	case "redis":
		if c.State.Redis.Addr == "" {
			return fmt.Errorf("state.redis.addr required for redis state")
		}
		if c.State.Redis.TTL != "" {
			if _, err := time.ParseDuration(c.State.Redis.TTL); err != nil {
				return fmt.Errorf("state.redis.ttl: %w", err)
			}
		}
	default:
		return fmt.Errorf("state.type must be 'memory', 'sqlite' or 'redis'")
	}
	return nil
}

// TickSize returns the configured tick size, or the instrument's.
func (c *Config) TickSize() (float64, error) {
	if c.Chart.TickSize > 0 {
		return c.Chart.TickSize, nil
	}
	meta, ok := market.LookupInstrument(c.Chart.Symbol)
	if !ok {
		return 0, fmt.Errorf("chart.tick_size required for unknown instrument %s", c.Chart.Symbol)
	}
	return meta.TickSize, nil
}

// ValueFormat returns the configured price format, or the instrument's.
func (c *Config) ValueFormat() market.ValueFormat {
	if c.Chart.ValueFormat != nil {
		return *c.Chart.ValueFormat
	}
	if meta, ok := market.LookupInstrument(c.Chart.Symbol); ok {
		return meta.ValueFormat
	}
	return 2
}

// ChartID names the chart for state keys; it defaults to the symbol.
func (c *Config) ChartID() string {
	if c.Chart.ID != "" {
		return c.Chart.ID
	}
	return c.Chart.Symbol
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			Symbol: "ES",
		},
		// lookback is filled from the visible span when the study is added
		Study: vap.DefaultSettings(0),
		Export: ExportConfig{
			Dir:      ".",
			Interval: "60s",
			Session: SessionConfig{
				Timezone: "UTC",
				Open:     "13:30",
				Close:    "20:00",
			},
		},
		Journal: JournalConfig{
			Type: "none",
		},
		State: StateConfig{
			Type: "memory",
		},
		Logging: logger.Config{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
