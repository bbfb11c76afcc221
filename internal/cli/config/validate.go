package config

import (
	"fmt"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return fmt.Errorf("invalid dialect: %w", err)
	}
	if !output.Mode(c.Output).Valid() {
		return fmt.Errorf("invalid output %q (expected one of %v)", c.Output, output.Modes)
	}
	return nil
}
