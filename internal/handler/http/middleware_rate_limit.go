package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/MKhiriev/finance-flow/internal/logger"
)

// withRateLimit counts requests per client IP. When the limiter itself
// fails the request is let through.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "auth:" + clientIP(r)

		allowed, retryAfter, err := h.limiter.Allow(r.Context(), key)
		if err != nil {
			logger.FromRequest(r).Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			h.fail(w, r, ErrTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
