package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "finance-flow-test",
	TokenDuration: 24 * time.Hour,
	BcryptCost:    4,
	OTPTTL:        10 * time.Minute,
	ResetTokenTTL: time.Hour,
	PublicURL:     "http://app.test/",
	Version:       "1.0.0-test",
}

// newTestRepositories opens a private in-memory SQLite database with the
// schema applied.
func newTestRepositories(t *testing.T) *store.Repositories {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := store.NewConnect(context.Background(), config.DB{Driver: config.DriverSQLite, DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return store.NewRepositories(db, logger.Nop())
}

// outbox is an EmailSender that keeps every message in memory.
type outbox struct {
	mu       sync.Mutex
	messages []models.EmailMessage
}

func (o *outbox) Send(_ context.Context, msg models.EmailMessage) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return nil
}

func (o *outbox) last(t *testing.T) models.EmailMessage {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.messages, "no email was sent")
	return o.messages[len(o.messages)-1]
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.messages)
}
