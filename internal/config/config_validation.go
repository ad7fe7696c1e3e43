// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	}

	if cfg.App.Environment != EnvironmentDevelopment && cfg.App.Environment != EnvironmentProduction {
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}

	if err := cfg.Storage.validate(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.MailWorkers < 1 || cfg.Workers.MailQueueSize < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (s Storage) validate() error {
	if s.DB.Driver != DriverPostgres && s.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, s.DB.Driver)
	}

	if s.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	return nil
}

func (cfg *CLIConfig) validate() error {
	return cfg.Storage.validate()
}
