package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/finance-flow/models"
)

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.services.InvoiceService.ListInvoices(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, invoices, "")
}

func (h *Handler) nextInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.services.InvoiceService.NextInvoiceNumber(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, models.NextInvoiceNumber{InvoiceNumber: number}, "")
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	invoice, err := h.services.InvoiceService.GetInvoice(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, invoice, "")
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.Invoice
	if !h.decode(w, r, &req) {
		return
	}

	invoice, err := h.services.InvoiceService.CreateInvoice(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusCreated, invoice, "Invoice created successfully")
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req models.InvoiceUpdate
	if !h.decode(w, r, &req) {
		return
	}

	invoice, err := h.services.InvoiceService.UpdateInvoice(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, invoice, "Invoice updated successfully")
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err = h.services.InvoiceService.DeleteInvoice(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, nil, "Invoice deleted successfully")
}

// importInvoices stores every invoice it can; per-record failures are
// reported in the result rather than failing the request.
func (h *Handler) importInvoices(w http.ResponseWriter, r *http.Request) {
	var req models.BulkImportRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.services.InvoiceService.BulkImportInvoices(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, result, fmt.Sprintf("Imported %d invoices. Failed: %d", result.Success, result.Failed))
}
