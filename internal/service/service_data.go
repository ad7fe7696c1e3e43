package service

import (
	"context"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
)

type dataService struct {
	dataRepository store.DataRepository
	validator      validators.Validator

	now    func() time.Time
	logger *logger.Logger
}

func NewDataService(dataRepository store.DataRepository, validator validators.Validator, logger *logger.Logger) DataService {
	return &dataService{
		dataRepository: dataRepository,
		validator:      validator,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

func (s *dataService) ExportAll(ctx context.Context) (models.DataDocument, error) {
	doc, err := s.dataRepository.ExportAll(ctx)
	if err != nil {
		return models.DataDocument{}, err
	}

	logger.FromContext(ctx).Info().
		Int("clients", len(doc.Clients)).
		Int("entries", len(doc.Entries)).
		Int("invoices", len(doc.Invoices)).
		Msg("data exported")
	return doc, nil
}

// ImportAll replaces the ledger with the document contents. Invoice and
// service defaults are applied the same way as for single invoices.
func (s *dataService) ImportAll(ctx context.Context, doc models.DataDocument) error {
	if err := s.validator.Validate(ctx, doc); err != nil {
		return err
	}

	today := s.now().Format(time.DateOnly)
	for i := range doc.Invoices {
		doc.Invoices[i] = normalizeInvoice(doc.Invoices[i], today)
	}
	for i := range doc.Entries {
		if doc.Entries[i].Status == "" {
			doc.Entries[i].Status = models.EntryPending
		}
	}

	return s.dataRepository.ReplaceAll(ctx, doc)
}

func (s *dataService) ClearAll(ctx context.Context) error {
	if err := s.dataRepository.ClearAll(ctx); err != nil {
		return err
	}

	logger.FromContext(ctx).Warn().Msg("all ledger data cleared")
	return nil
}

func (s *dataService) Stats(ctx context.Context) (models.Stats, error) {
	return s.dataRepository.Stats(ctx)
}
