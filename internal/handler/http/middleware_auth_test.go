package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/finance-flow/internal/service"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "no header",
			wantStatus:  http.StatusUnauthorized,
			wantCode:    codeUnauthorized,
			wantMessage: "No token provided",
		},
		{
			name:        "scheme without token",
			header:      "Bearer",
			wantStatus:  http.StatusUnauthorized,
			wantCode:    codeUnauthorized,
			wantMessage: "Invalid token format",
		},
		{
			name:        "token rejected",
			header:      "Bearer forged",
			wantStatus:  http.StatusForbidden,
			wantCode:    codeForbidden,
			wantMessage: "Invalid or expired token",
		},
	}

	h := newTestHandler(t, &service.Services{EntryService: &fakeEntryService{}}, nil, testConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}

			rec := doRequest(t, h, http.MethodGet, "/api/entries", "", headers)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantMessage, env.Error.Message)
		})
	}
}

func TestAuthMiddleware_PassesClaimsDownstream(t *testing.T) {
	var gotID int64
	auth := &fakeAuthService{
		getMe: func(id int64) (models.User, error) {
			gotID = id
			return models.User{ID: id, Name: "Asha", Email: "asha@shop.in", Role: models.RoleUser}, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth}, nil, testConfig())

	rec := doRequest(t, h, http.MethodGet, "/api/auth/me", "", authHeader())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
	assert.JSONEq(t, `{"id":7,"name":"Asha","email":"asha@shop.in","phone":null,"avatar":null,"role":"user","isVerified":false,"createdAt":"0001-01-01T00:00:00Z"}`,
		string(decodeEnvelope(t, rec).Data))
}

func TestAdminMiddleware(t *testing.T) {
	admin := &fakeAdminService{admins: map[int64]bool{}}
	h := newTestHandler(t, &service.Services{AdminService: admin}, nil, testConfig())

	rec := doRequest(t, h, http.MethodGet, "/api/admin/users", "", authHeader())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, codeForbidden, decodeEnvelope(t, rec).Error.Code)

	admin.admins[7] = true
	rec = doRequest(t, h, http.MethodGet, "/api/admin/users", "", authHeader())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rec).Data))
}

func TestDeleteUser_Self(t *testing.T) {
	admin := &fakeAdminService{
		admins: map[int64]bool{7: true},
		deleteUser: func(actorID, userID int64) error {
			if actorID == userID {
				return service.ErrCannotDeleteSelf
			}
			return nil
		},
	}
	h := newTestHandler(t, &service.Services{AdminService: admin}, nil, testConfig())

	rec := doRequest(t, h, http.MethodDelete, "/api/admin/users/7", "", authHeader())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete your own admin account.", decodeEnvelope(t, rec).Error.Message)

	rec = doRequest(t, h, http.MethodDelete, "/api/admin/users/9", "", authHeader())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully.", decodeEnvelope(t, rec).Message)
}
