package service

import (
	"context"

	"github.com/MKhiriev/finance-flow/models"
)

// AuthService covers the account lifecycle: signup and email verification,
// password login with the device-trust passcode step-up, password reset,
// profile edits and session tokens.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)
	VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (models.LoginResult, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error

	GetMe(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
	UploadAvatar(ctx context.Context, userID int64, upload models.AvatarUpload) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type ClientService interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id int64) (models.Client, error)
	CreateClient(ctx context.Context, client models.ClientUpdate) (models.Client, error)
	UpdateClient(ctx context.Context, id int64, update models.ClientUpdate) (models.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type EntryService interface {
	ListEntries(ctx context.Context, filter models.EntryFilter) ([]models.FinanceEntry, error)
	GetEntry(ctx context.Context, id int64) (models.FinanceEntry, error)
	CreateEntry(ctx context.Context, entry models.EntryUpdate) (models.FinanceEntry, error)
	UpdateEntry(ctx context.Context, id int64, update models.EntryUpdate) (models.FinanceEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

type InvoiceService interface {
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (models.Invoice, error)
	NextInvoiceNumber(ctx context.Context) (string, error)
	CreateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error)
	UpdateInvoice(ctx context.Context, id int64, update models.InvoiceUpdate) (models.Invoice, error)
	DeleteInvoice(ctx context.Context, id int64) error
	// BulkImportInvoices stores every invoice independently. A failing
	// invoice is reported in the result and never affects the others.
	BulkImportInvoices(ctx context.Context, req models.BulkImportRequest) (models.BulkImportResult, error)
}

type SettingService interface {
	GetAllSettings(ctx context.Context) (map[string]models.SettingValue, error)
	// GetSetting returns nil without an error when the key is not set.
	GetSetting(ctx context.Context, key string) (*models.SettingValue, error)
	UpdateSetting(ctx context.Context, key string, update models.SettingUpdate) (models.Setting, error)
	DeleteSetting(ctx context.Context, key string) error
}

// DataService moves the whole dataset in and out. ImportAll and ClearAll are
// all-or-nothing; settings survive both.
type DataService interface {
	ExportAll(ctx context.Context) (models.DataDocument, error)
	ImportAll(ctx context.Context, doc models.DataDocument) error
	ClearAll(ctx context.Context) error
	Stats(ctx context.Context) (models.Stats, error)
}

type AnalyticsService interface {
	FinancialSummary(ctx context.Context, filter models.EntryFilter) (models.FinancialSummary, error)
	Monthly(ctx context.Context, year int) ([]models.IncomeExpense, error)
	PaymentModes(ctx context.Context) (map[models.PaymentMode]float64, error)
	StatusDistribution(ctx context.Context) (models.StatusDistribution, error)
	YearlyRevenue(ctx context.Context) (map[string]models.IncomeExpense, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.UserOverview, error)
	DeleteUser(ctx context.Context, actorID, userID int64) error
	PromoteUser(ctx context.Context, email string) error
	// RequireAdmin returns ErrNotAdmin unless the user exists and holds the
	// admin role.
	RequireAdmin(ctx context.Context, userID int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
