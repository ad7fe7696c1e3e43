package service

import (
	"github.com/MKhiriev/finance-flow/internal/adapter"
	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/validators"
)

type Services struct {
	AuthService      AuthService
	ClientService    ClientService
	EntryService     EntryService
	InvoiceService   InvoiceService
	SettingService   SettingService
	DataService      DataService
	AnalyticsService AnalyticsService
	AdminService     AdminService
	AppInfoService   AppInfoService
}

func NewServices(repos *store.Repositories, storages *store.Storages, mailer adapter.EmailSender, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	validator := validators.NewRequestValidator()

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.LoginHistoryRepository,
			storages.AvatarStorage,
			mailer,
			validator,
			cfg.App,
			logger,
		),
		ClientService:    NewClientService(repos.ClientRepository, validator, logger),
		EntryService:     NewEntryService(repos.EntryRepository, validator, logger),
		InvoiceService:   NewInvoiceService(repos.InvoiceRepository, validator, logger),
		SettingService:   NewSettingService(repos.SettingRepository, validator, logger),
		DataService:      NewDataService(repos.DataRepository, validator, logger),
		AnalyticsService: NewAnalyticsService(repos.EntryRepository, validator, logger),
		AdminService:     NewAdminService(repos.UserRepository, logger),
		AppInfoService:   appInfo,
	}, nil
}
