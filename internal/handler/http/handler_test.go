package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/service"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/stretchr/testify/require"
)

const testToken = "good-token"

// Fakes embed the service interface so only the methods a test exercises
// need a body; anything else panics.

type fakeAuthService struct {
	service.AuthService

	signup      func(models.SignupRequest) (models.User, error)
	login       func(models.LoginRequest) (models.LoginResult, error)
	verifyEmail func(string) error
	getMe       func(int64) (models.User, error)
}

func (f *fakeAuthService) Signup(_ context.Context, req models.SignupRequest) (models.User, error) {
	return f.signup(req)
}

func (f *fakeAuthService) Login(_ context.Context, req models.LoginRequest) (models.LoginResult, error) {
	return f.login(req)
}

func (f *fakeAuthService) VerifyEmail(_ context.Context, token string) error {
	return f.verifyEmail(token)
}

func (f *fakeAuthService) GetMe(_ context.Context, id int64) (models.User, error) {
	return f.getMe(id)
}

// ParseToken accepts only testToken and maps it to user 7.
func (f *fakeAuthService) ParseToken(_ context.Context, token string) (models.Token, error) {
	if token != testToken {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{Claims: models.Claims{UserID: 7, Email: "asha@shop.in"}, SignedString: token}, nil
}

type fakeAdminService struct {
	service.AdminService

	admins     map[int64]bool
	deleteUser func(actorID, userID int64) error
}

func (f *fakeAdminService) RequireAdmin(_ context.Context, userID int64) error {
	if !f.admins[userID] {
		return service.ErrNotAdmin
	}
	return nil
}

func (f *fakeAdminService) ListUsers(context.Context) ([]models.UserOverview, error) {
	return []models.UserOverview{}, nil
}

func (f *fakeAdminService) DeleteUser(_ context.Context, actorID, userID int64) error {
	return f.deleteUser(actorID, userID)
}

type fakeEntryService struct {
	service.EntryService

	gotFilter models.EntryFilter
}

func (f *fakeEntryService) ListEntries(_ context.Context, filter models.EntryFilter) ([]models.FinanceEntry, error) {
	f.gotFilter = filter
	return []models.FinanceEntry{}, nil
}

func (f *fakeEntryService) GetEntry(_ context.Context, id int64) (models.FinanceEntry, error) {
	return models.FinanceEntry{}, service.ErrEntryNotFound
}

type fakeInvoiceService struct {
	service.InvoiceService

	next   string
	result models.BulkImportResult
}

func (f *fakeInvoiceService) NextInvoiceNumber(context.Context) (string, error) {
	return f.next, nil
}

func (f *fakeInvoiceService) BulkImportInvoices(context.Context, models.BulkImportRequest) (models.BulkImportResult, error) {
	return f.result, nil
}

type fakeSettingService struct {
	service.SettingService

	values map[string]models.SettingValue
}

func (f *fakeSettingService) GetSetting(_ context.Context, key string) (*models.SettingValue, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

type fakeDataService struct {
	service.DataService

	doc      models.DataDocument
	imported *models.DataDocument
}

func (f *fakeDataService) ExportAll(context.Context) (models.DataDocument, error) {
	return f.doc, nil
}

func (f *fakeDataService) ImportAll(_ context.Context, doc models.DataDocument) error {
	f.imported = &doc
	return nil
}

type fakeAppInfoService struct {
	service.AppInfoService
}

func (fakeAppInfoService) GetAppVersion(context.Context) string {
	return "1.4.0"
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App:    config.App{Environment: config.EnvironmentDevelopment},
		Server: config.Server{RequestTimeout: 5 * time.Second},
		Storage: config.Storage{
			Files: config.Files{PublicPrefix: "/uploads/avatars"},
		},
	}
}

func newTestHandler(t *testing.T, services *service.Services, limiter store.RateLimiter, cfg config.StructuredConfig) http.Handler {
	t.Helper()

	if services.AuthService == nil {
		services.AuthService = &fakeAuthService{}
	}
	if services.AppInfoService == nil {
		services.AppInfoService = fakeAppInfoService{}
	}

	return NewHandler(services, limiter, cfg, logger.Nop()).Init()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func authHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

// envelope is the decoded response body with data left raw.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   *models.ErrorBody `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}
