package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/finance-flow/internal/mock"
	"github.com/MKhiriev/finance-flow/internal/service"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name           string
		allowed        bool
		retryAfter     time.Duration
		limiterErr     error
		wantStatus     int
		wantRetryAfter string
	}{
		{
			name:       "under the limit",
			allowed:    true,
			wantStatus: http.StatusOK,
		},
		{
			name:           "over the limit",
			retryAfter:     42500 * time.Millisecond,
			wantStatus:     http.StatusTooManyRequests,
			wantRetryAfter: "43",
		},
		{
			name:       "limiter down lets requests through",
			limiterErr: errors.New("connection refused"),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			limiter := mock.NewMockRateLimiter(ctrl)
			limiter.EXPECT().
				Allow(gomock.Any(), "auth:192.0.2.1").
				Return(tt.allowed, tt.retryAfter, tt.limiterErr)

			auth := &fakeAuthService{verifyEmail: func(string) error { return nil }}
			h := newTestHandler(t, &service.Services{AuthService: auth}, limiter, testConfig())

			rec := doRequest(t, h, http.MethodGet, "/api/auth/verify-email?token=abc", "", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRetryAfter, rec.Header().Get("Retry-After"))
			if tt.wantStatus == http.StatusTooManyRequests {
				assert.Equal(t, codeRateLimited, decodeEnvelope(t, rec).Error.Code)
			}
		})
	}
}

func TestRateLimit_OnlyGuardsPublicAuthRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Times(0)

	h := newTestHandler(t, &service.Services{}, limiter, testConfig())

	rec := doRequest(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
