package service

import (
	"context"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
)

type entryService struct {
	entryRepository store.EntryRepository
	validator       validators.Validator

	logger *logger.Logger
}

func NewEntryService(entryRepository store.EntryRepository, validator validators.Validator, logger *logger.Logger) EntryService {
	return &entryService{
		entryRepository: entryRepository,
		validator:       validator,
		logger:          logger,
	}
}

func (s *entryService) ListEntries(ctx context.Context, filter models.EntryFilter) ([]models.FinanceEntry, error) {
	if err := s.validator.Validate(ctx, filter); err != nil {
		return nil, err
	}
	return s.entryRepository.ListEntries(ctx, filter)
}

func (s *entryService) GetEntry(ctx context.Context, id int64) (models.FinanceEntry, error) {
	entry, err := s.entryRepository.GetEntry(ctx, id)
	return entry, notFoundAs(err, ErrEntryNotFound)
}

// CreateEntry takes the update shape so that an absent amount can be told
// apart from zero.
func (s *entryService) CreateEntry(ctx context.Context, entry models.EntryUpdate) (models.FinanceEntry, error) {
	if err := s.validator.Validate(ctx, entry, validators.EntryCreateFields...); err != nil {
		return models.FinanceEntry{}, err
	}

	return s.entryRepository.CreateEntry(ctx, models.FinanceEntry{
		Date:        *entry.Date,
		ClientName:  *trimmed(entry.ClientName),
		Description: entry.Description,
		Amount:      *entry.Amount,
		Type:        *entry.Type,
		Status:      *entry.Status,
		PaymentMode: *entry.PaymentMode,
	})
}

func (s *entryService) UpdateEntry(ctx context.Context, id int64, update models.EntryUpdate) (models.FinanceEntry, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.FinanceEntry{}, err
	}

	entry, err := s.entryRepository.UpdateEntry(ctx, id, update)
	return entry, notFoundAs(err, ErrEntryNotFound)
}

func (s *entryService) DeleteEntry(ctx context.Context, id int64) error {
	return notFoundAs(s.entryRepository.DeleteEntry(ctx, id), ErrEntryNotFound)
}
