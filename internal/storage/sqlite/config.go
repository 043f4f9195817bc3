package sqlite

import (
	"fmt"
)

type Config struct {
	DatabasePath string
}

func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		DatabasePath: "./highlights.db",
	}
}
