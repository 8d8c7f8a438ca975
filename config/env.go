package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix is prepended to every environment override, e.g.
// VAP_CHART_SYMBOL or VAP_STATE_REDIS_ADDR.
const EnvPrefix = "VAP_"

// ApplyEnv overlays VAP_* environment variables onto cfg. Variables that are
// not set leave the file value alone.
func ApplyEnv(ctx context.Context, cfg *Config) error {
	return applyEnv(ctx, cfg, envconfig.OsLookuper())
}

func applyEnv(ctx context.Context, cfg *Config, l envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, l),
	}); err != nil {
		return fmt.Errorf("apply environment: %w", err)
	}
	return nil
}
