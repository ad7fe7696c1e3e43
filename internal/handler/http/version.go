package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/utils"
	"github.com/MKhiriev/finance-flow/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Success:   true,
		Message:   "FinanceFlow API is running",
		Timestamp: time.Now().UTC(),
	}
	if _, err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.health").Msg("error writing response")
	}
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}
