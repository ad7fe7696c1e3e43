package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/finance-flow/models"
)

// entryFilter reads the listing filters from the query string. month is
// zero-based. Empty parameters are ignored.
func entryFilter(query url.Values) (models.EntryFilter, error) {
	filter := models.EntryFilter{
		StartDate:   query.Get("startDate"),
		EndDate:     query.Get("endDate"),
		Type:        models.EntryType(query.Get("type")),
		Status:      models.EntryStatus(query.Get("status")),
		PaymentMode: models.PaymentMode(query.Get("paymentMode")),
		Search:      query.Get("search"),
	}

	var err error
	if filter.Month, err = optionalInt(query.Get("month")); err != nil {
		return filter, err
	}
	if filter.Year, err = optionalInt(query.Get("year")); err != nil {
		return filter, err
	}
	return filter, nil
}

func optionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, ErrInvalidQuery
	}
	return &n, nil
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := entryFilter(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	entries, err := h.services.EntryService.ListEntries(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, entries, "")
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	entry, err := h.services.EntryService.GetEntry(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, entry, "")
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	var req models.EntryUpdate
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.services.EntryService.CreateEntry(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusCreated, entry, "Entry created successfully")
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req models.EntryUpdate
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.services.EntryService.UpdateEntry(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, entry, "Entry updated successfully")
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err = h.services.EntryService.DeleteEntry(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, nil, "Entry deleted successfully")
}
