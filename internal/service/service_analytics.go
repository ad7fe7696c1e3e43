package service

import (
	"context"
	"strconv"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
)

// analyticsService aggregates the listed entries in memory.
type analyticsService struct {
	entryRepository store.EntryRepository
	validator       validators.Validator

	logger *logger.Logger
}

func NewAnalyticsService(entryRepository store.EntryRepository, validator validators.Validator, logger *logger.Logger) AnalyticsService {
	return &analyticsService{
		entryRepository: entryRepository,
		validator:       validator,
		logger:          logger,
	}
}

// FinancialSummary totals the filtered entries. Pending and received amounts
// only count income.
func (s *analyticsService) FinancialSummary(ctx context.Context, filter models.EntryFilter) (models.FinancialSummary, error) {
	if err := s.validator.Validate(ctx, filter); err != nil {
		return models.FinancialSummary{}, err
	}

	entries, err := s.entryRepository.ListEntries(ctx, filter)
	if err != nil {
		return models.FinancialSummary{}, err
	}

	var summary models.FinancialSummary
	for _, e := range entries {
		if e.Type != models.EntryIncome {
			summary.TotalExpense += e.Amount
			continue
		}
		summary.TotalIncome += e.Amount
		if e.Status == models.EntryPending {
			summary.PendingAmount += e.Amount
		} else {
			summary.ReceivedAmount += e.Amount
		}
	}
	summary.NetBalance = summary.TotalIncome - summary.TotalExpense

	return summary, nil
}

// Monthly returns twelve buckets, January first.
func (s *analyticsService) Monthly(ctx context.Context, year int) ([]models.IncomeExpense, error) {
	if err := s.validator.Validate(ctx, models.EntryFilter{Year: &year}); err != nil {
		return nil, err
	}

	entries, err := s.entryRepository.ListEntries(ctx, models.EntryFilter{Year: &year})
	if err != nil {
		return nil, err
	}

	months := make([]models.IncomeExpense, 12)
	for _, e := range entries {
		d, err := time.Parse(time.DateOnly, e.Date)
		if err != nil {
			continue
		}
		addTo(&months[d.Month()-1], e)
	}
	return months, nil
}

func (s *analyticsService) PaymentModes(ctx context.Context) (map[models.PaymentMode]float64, error) {
	entries, err := s.entryRepository.ListEntries(ctx, models.EntryFilter{})
	if err != nil {
		return nil, err
	}

	out := make(map[models.PaymentMode]float64)
	for _, e := range entries {
		out[e.PaymentMode] += e.Amount
	}
	return out, nil
}

func (s *analyticsService) StatusDistribution(ctx context.Context) (models.StatusDistribution, error) {
	entries, err := s.entryRepository.ListEntries(ctx, models.EntryFilter{})
	if err != nil {
		return models.StatusDistribution{}, err
	}

	var dist models.StatusDistribution
	for _, e := range entries {
		if e.Status == models.EntryPending {
			dist.Pending += e.Amount
		} else {
			dist.Received += e.Amount
		}
	}
	return dist, nil
}

// YearlyRevenue buckets entries by calendar year, keyed "2024" and so on.
func (s *analyticsService) YearlyRevenue(ctx context.Context) (map[string]models.IncomeExpense, error) {
	entries, err := s.entryRepository.ListEntries(ctx, models.EntryFilter{})
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.IncomeExpense)
	for _, e := range entries {
		d, err := time.Parse(time.DateOnly, e.Date)
		if err != nil {
			continue
		}
		key := strconv.Itoa(d.Year())
		bucket := out[key]
		addTo(&bucket, e)
		out[key] = bucket
	}
	return out, nil
}

func addTo(bucket *models.IncomeExpense, e models.FinanceEntry) {
	if e.Type == models.EntryIncome {
		bucket.Income += e.Amount
	} else {
		bucket.Expense += e.Amount
	}
}
