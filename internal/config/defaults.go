package config

import "time"

// Values applied to every field no other source has set.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultHTTPAddress    = "0.0.0.0:5000"
	defaultRequestTimeout = 30 * time.Second
	defaultTokenIssuer    = "finance-flow"
	defaultTokenDuration  = 24 * time.Hour
	defaultBcryptCost     = 10
	defaultOTPTTL         = 10 * time.Minute
	defaultResetTokenTTL  = time.Hour
	defaultPublicURL      = "http://localhost:5173"
	defaultDriver         = DriverSQLite
	defaultDSN            = "financeflow.db"
	defaultAvatarDir      = "uploads/avatars"
	defaultPublicPrefix   = "/uploads/avatars"
	defaultRateLimit      = 20
	defaultRateWindow     = time.Minute
	defaultEmailFrom      = "FinanceFlow <no-reply@financeflow.local>"
	defaultEmailTimeout   = 10 * time.Second
	defaultEmailRetries   = 2
	defaultMailWorkers    = 2
	defaultMailQueueSize  = 100
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
			BcryptCost:    defaultBcryptCost,
			OTPTTL:        defaultOTPTTL,
			ResetTokenTTL: defaultResetTokenTTL,
			Version:       "dev",
			Environment:   EnvironmentDevelopment,
			PublicURL:     defaultPublicURL,
		},
		Storage: Storage{
			DB: DB{
				Driver: defaultDriver,
				DSN:    defaultDSN,
			},
			Files: Files{
				AvatarDir:    defaultAvatarDir,
				PublicPrefix: defaultPublicPrefix,
			},
			Redis: Redis{
				Limit:  defaultRateLimit,
				Window: defaultRateWindow,
			},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Adapter: Adapter{
			EmailFrom:      defaultEmailFrom,
			RequestTimeout: defaultEmailTimeout,
			RetryCount:     defaultEmailRetries,
		},
		Workers: Workers{
			MailWorkers:   defaultMailWorkers,
			MailQueueSize: defaultMailQueueSize,
		},
	}
}
