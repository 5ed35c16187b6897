package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
	}

	if c.Sync.MultiplierBps <= 0 {
		return fmt.Errorf("sync.multiplier_bps must be > 0 (got %d)", c.Sync.MultiplierBps)
	}
	if c.Sync.Interval < 0 {
		return fmt.Errorf("sync.interval must be >= 0 (got %v)", c.Sync.Interval)
	}

	return nil
}
