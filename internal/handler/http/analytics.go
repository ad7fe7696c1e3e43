package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) financialSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := entryFilter(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	summary, err := h.services.AnalyticsService.FinancialSummary(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, summary, "")
}

func (h *Handler) monthlyAnalytics(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.fail(w, r, ErrInvalidQuery)
		return
	}

	months, err := h.services.AnalyticsService.Monthly(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, months, "")
}

func (h *Handler) paymentModes(w http.ResponseWriter, r *http.Request) {
	modes, err := h.services.AnalyticsService.PaymentModes(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, modes, "")
}

func (h *Handler) statusDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.services.AnalyticsService.StatusDistribution(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, dist, "")
}

func (h *Handler) yearlyRevenue(w http.ResponseWriter, r *http.Request) {
	years, err := h.services.AnalyticsService.YearlyRevenue(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, years, "")
}
