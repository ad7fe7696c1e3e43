package http

import (
	"net/http"

	"github.com/MKhiriev/finance-flow/models"
)

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.services.ClientService.ListClients(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, clients, "")
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	client, err := h.services.ClientService.GetClient(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, client, "")
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var req models.ClientUpdate
	if !h.decode(w, r, &req) {
		return
	}

	client, err := h.services.ClientService.CreateClient(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusCreated, client, "Client created successfully")
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req models.ClientUpdate
	if !h.decode(w, r, &req) {
		return
	}

	client, err := h.services.ClientService.UpdateClient(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, client, "Client updated successfully")
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err = h.services.ClientService.DeleteClient(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, nil, "Client deleted successfully")
}
