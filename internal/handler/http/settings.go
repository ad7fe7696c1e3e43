package http

import (
	"net/http"

	"github.com/MKhiriev/finance-flow/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getAllSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.services.SettingService.GetAllSettings(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, settings, "")
}

// getSetting answers a missing key with success and no data.
func (h *Handler) getSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := h.services.SettingService.GetSetting(r.Context(), key)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if value == nil {
		h.ok(w, r, http.StatusOK, nil, "")
		return
	}
	h.ok(w, r, http.StatusOK, models.Setting{Key: key, Value: *value}, "")
}

func (h *Handler) updateSetting(w http.ResponseWriter, r *http.Request) {
	var req models.SettingUpdate
	if !h.decode(w, r, &req) {
		return
	}

	setting, err := h.services.SettingService.UpdateSetting(r.Context(), chi.URLParam(r, "key"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, setting, "Setting updated successfully")
}

func (h *Handler) deleteSetting(w http.ResponseWriter, r *http.Request) {
	if err := h.services.SettingService.DeleteSetting(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, nil, "Setting deleted successfully")
}
