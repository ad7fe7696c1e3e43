package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
)

// hashHeader carries the hex HMAC-SHA256 of a body signed with the
// configured hash key.
const hashHeader = "HashSHA256"

// importHashing checks the HashSHA256 header of an import against the body.
// Requests without the header, or servers without a hash key, skip the check.
func (h *Handler) importHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		signature := r.Header.Get(hashHeader)
		if signature == "" || !h.hasher.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			log.Err(err).Str("func", "*Handler.importHashing").Msg("failed to read request body")
			h.fail(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.hasher.Verify(body, signature) {
			log.Error().Str("func", "*Handler.importHashing").
				Str("hash from request", signature).
				Msg("hashes are not equal")
			h.fail(w, r, ErrIntegrityCheckFailed)
			return
		}

		log.Debug().Str("func", "*Handler.importHashing").Msg("hashes are equal")
		next.ServeHTTP(w, r)
	})
}

// okSigned writes a success envelope and, with a hash key configured, sets
// the HashSHA256 header over the exact bytes written.
func (h *Handler) okSigned(w http.ResponseWriter, r *http.Request, data any, message string) {
	body, err := json.Marshal(models.OK(data, message))
	if err != nil {
		h.fail(w, r, fmt.Errorf("error writing data to JSON: %w", err))
		return
	}

	if h.hasher.Enabled() {
		w.Header().Set(hashHeader, h.hasher.Sign(body))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(body); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.okSigned").Msg("error writing response")
	}
}
