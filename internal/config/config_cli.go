package config

import (
	"fmt"
)

// CLIConfig is the configuration view used by the admin command line tool.
// It only needs the database.
type CLIConfig struct {
	// Storage contains the database settings.
	Storage Storage
	// App carries the version and hash key for export files.
	App App
}

// GetCLIConfig builds and validates the admin tool configuration. Flags are
// read from args up to the first positional argument; the positional
// arguments (the subcommand and its operands) are returned.
func GetCLIConfig(args []string) (*CLIConfig, []string, error) {
	cfg, rest, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	cliCfg := &CLIConfig{
		Storage: cfg.Storage,
		App:     cfg.App,
	}

	return cliCfg, rest, cliCfg.validate()
}
