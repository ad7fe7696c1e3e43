package store

import "github.com/MKhiriev/finance-flow/internal/logger"

// Repositories groups every SQL repository built over one [DB].
type Repositories struct {
	UserRepository         UserRepository
	LoginHistoryRepository LoginHistoryRepository
	ClientRepository       ClientRepository
	EntryRepository        EntryRepository
	InvoiceRepository      InvoiceRepository
	SettingRepository      SettingRepository
	DataRepository         DataRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db, log),
		LoginHistoryRepository: NewLoginHistoryRepository(db, log),
		ClientRepository:       NewClientRepository(db, log),
		EntryRepository:        NewEntryRepository(db, log),
		InvoiceRepository:      NewInvoiceRepository(db, log),
		SettingRepository:      NewSettingRepository(db, log),
		DataRepository:         NewDataRepository(db, log),
	}
}
