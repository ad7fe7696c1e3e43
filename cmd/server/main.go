package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/finance-flow/internal/adapter"
	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/handler"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/server"
	"github.com/MKhiriev/finance-flow/internal/service"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/workers"
	"github.com/MKhiriev/finance-flow/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	printBuildInfo(buildInfo)

	log := logger.NewLogger("finance-flow-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = log.ForEnvironment(cfg.App.Environment)

	if buildVersion != "" {
		cfg.App.Version = buildVersion
	}

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)
	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	mailer := workers.NewMailDispatcher(
		adapter.NewHTTPEmailSender(cfg.Adapter, log),
		cfg.Workers.MailWorkers,
		cfg.Workers.MailQueueSize,
		log,
	)
	backgroundWorkers := workers.NewWorkers(mailer)
	backgroundWorkers.Run(ctx)

	services, err := service.NewServices(repositories, storages, mailer, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, storages.RateLimiter, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	// blocks until a stop signal; in-flight requests finish before the
	// mail queue is drained
	srv.RunServer()
	backgroundWorkers.Stop()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
