package http

import (
	"net/http"

	"github.com/MKhiriev/finance-flow/models"
)

// exportData answers with the whole ledger. With a hash key configured the
// response carries a HashSHA256 header over the exact body.
func (h *Handler) exportData(w http.ResponseWriter, r *http.Request) {
	doc, err := h.services.DataService.ExportAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.okSigned(w, r, doc, "")
}

// importData replaces the ledger with the posted document. The swap is all
// or nothing.
func (h *Handler) importData(w http.ResponseWriter, r *http.Request) {
	var doc models.DataDocument
	if !h.decode(w, r, &doc) {
		return
	}

	if err := h.services.DataService.ImportAll(r.Context(), doc); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, nil, "Data imported successfully")
}

func (h *Handler) clearData(w http.ResponseWriter, r *http.Request) {
	if err := h.services.DataService.ClearAll(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, nil, "All data cleared successfully")
}
