package http

import "net/http"

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.AdminService.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, users, "")
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err = h.services.AdminService.DeleteUser(r.Context(), userID(r), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, http.StatusOK, nil, "User deleted successfully.")
}
