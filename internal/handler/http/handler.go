package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/service"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/utils"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds JSON request bodies. Invoices may embed a base64 logo.
const maxBodyBytes = 10 << 20

type Handler struct {
	services *service.Services
	limiter  store.RateLimiter
	hasher   *utils.Hasher

	// avatarDir is served under avatarPrefix. Empty when avatars live in S3.
	avatarDir    string
	avatarPrefix string

	requestTimeout time.Duration
	production     bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter store.RateLimiter, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	if limiter == nil {
		limiter = store.NewNopRateLimiter()
	}

	h := &Handler{
		services:       services,
		limiter:        limiter,
		hasher:         utils.NewHasher(cfg.App.HashKey),
		avatarPrefix:   "/" + strings.Trim(cfg.Storage.Files.PublicPrefix, "/"),
		requestTimeout: cfg.Server.RequestTimeout,
		production:     cfg.App.IsProduction(),
		logger:         logger,
	}
	if cfg.Storage.S3.Bucket == "" {
		h.avatarDir = cfg.Storage.Files.AvatarDir
	}

	logger.Info().Msg("http handler created")
	return h
}

// ok writes a success envelope.
func (h *Handler) ok(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	if _, err := utils.WriteJSON(w, models.OK(data, message), status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.ok").Msg("error writing response")
	}
}

// decode reads the JSON body into dst and answers 400 itself on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := utils.DecodeJSON(r, dst, maxBodyBytes)
	switch {
	case err == nil:
		return true
	case errors.Is(err, utils.ErrEmptyBody):
		h.fail(w, r, err)
	default:
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON body")
		h.fail(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
	}
	return false
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// userID returns the id the auth middleware put into the context.
func userID(r *http.Request) int64 {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}
