package handler

import (
	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/handler/http"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/service"
	"github.com/MKhiriev/finance-flow/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, limiter store.RateLimiter, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, limiter, cfg, logger),
	}, nil
}
