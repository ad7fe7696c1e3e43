package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/finance-flow/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator understands the driver errors of one SQL dialect.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification
	// Constraint returns ErrDuplicate or ErrConstraintViolation for integrity
	// failures and nil for anything else.
	Constraint(err error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByVerificationToken(ctx context.Context, token string) (models.User, error)
	FindUserByResetToken(ctx context.Context, token string) (models.User, error)
	EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error)
	UpdateUser(ctx context.Context, userID int64, changes models.UserChanges) (models.User, error)
	MarkVerified(ctx context.Context, userID int64) error
	SetOTP(ctx context.Context, userID int64, otp string, expiry time.Time) error
	ConsumeOTP(ctx context.Context, userID int64, otp string) error
	SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error
	ResetPassword(ctx context.Context, userID int64, passwordHash string) error
	SetRole(ctx context.Context, email string, role string) error
	ListUsers(ctx context.Context) ([]models.UserOverview, error)
	DeleteUser(ctx context.Context, id int64) error
}

type LoginHistoryRepository interface {
	RecordLogin(ctx context.Context, entry models.LoginHistory) error
	IsKnownDevice(ctx context.Context, userID int64, userAgent string) (bool, error)
}

type ClientRepository interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id int64) (models.Client, error)
	CreateClient(ctx context.Context, client models.Client) (models.Client, error)
	UpdateClient(ctx context.Context, id int64, update models.ClientUpdate) (models.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type EntryRepository interface {
	ListEntries(ctx context.Context, filter models.EntryFilter) ([]models.FinanceEntry, error)
	GetEntry(ctx context.Context, id int64) (models.FinanceEntry, error)
	CreateEntry(ctx context.Context, entry models.FinanceEntry) (models.FinanceEntry, error)
	UpdateEntry(ctx context.Context, id int64, update models.EntryUpdate) (models.FinanceEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

type InvoiceRepository interface {
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (models.Invoice, error)
	LastInvoiceNumber(ctx context.Context) (string, error)
	InvoiceNumberExists(ctx context.Context, number string) (bool, error)
	CreateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error)
	UpdateInvoice(ctx context.Context, id int64, update models.InvoiceUpdate) (models.Invoice, error)
	DeleteInvoice(ctx context.Context, id int64) error
}

type SettingRepository interface {
	GetAllSettings(ctx context.Context) ([]models.Setting, error)
	GetSetting(ctx context.Context, key string) (models.Setting, error)
	UpsertSetting(ctx context.Context, key string, value string) (models.Setting, error)
	DeleteSetting(ctx context.Context, key string) error
}

// DataRepository covers the whole-dataset operations. ReplaceAll and ClearAll
// each run inside one transaction and never touch settings rows except to
// upsert the ones supplied.
type DataRepository interface {
	ExportAll(ctx context.Context) (models.DataDocument, error)
	ReplaceAll(ctx context.Context, doc models.DataDocument) error
	ClearAll(ctx context.Context) error
	Stats(ctx context.Context) (models.Stats, error)
}

// AvatarStorage persists uploaded avatar images and returns the public path
// or URL under which the stored file is reachable.
type AvatarStorage interface {
	Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, publicPath string) error
}

// RateLimiter counts requests per key in fixed time windows.
type RateLimiter interface {
	// Allow registers one hit for key. It reports whether the hit is within
	// the limit and how long until the window resets.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}
