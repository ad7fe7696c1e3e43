package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/finance-flow/internal/admin"
	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.NewLogger("finance-flow-admin").ForEnvironment(config.EnvironmentProduction)

	cfg, args, err := config.GetCLIConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app := admin.NewApp(store.NewRepositories(db, log), buildInfo, os.Stdin, os.Stdout, log)

	return app.Run(ctx, args)
}
