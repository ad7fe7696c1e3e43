package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
)

type settingService struct {
	settingRepository store.SettingRepository
	validator         validators.Validator

	logger *logger.Logger
}

func NewSettingService(settingRepository store.SettingRepository, validator validators.Validator, logger *logger.Logger) SettingService {
	return &settingService{
		settingRepository: settingRepository,
		validator:         validator,
		logger:            logger,
	}
}

func (s *settingService) GetAllSettings(ctx context.Context) (map[string]models.SettingValue, error) {
	settings, err := s.settingRepository.GetAllSettings(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.SettingValue, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}
	return out, nil
}

func (s *settingService) GetSetting(ctx context.Context, key string) (*models.SettingValue, error) {
	setting, err := s.settingRepository.GetSetting(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting.Value, nil
}

// UpdateSetting stores the value as text: strings verbatim, anything else as
// compact JSON.
func (s *settingService) UpdateSetting(ctx context.Context, key string, update models.SettingUpdate) (models.Setting, error) {
	if err := validators.ValidateSettingKey(key); err != nil {
		return models.Setting{}, err
	}
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Setting{}, err
	}

	return s.settingRepository.UpsertSetting(ctx, key, update.Value.Raw)
}

func (s *settingService) DeleteSetting(ctx context.Context, key string) error {
	return notFoundAs(s.settingRepository.DeleteSetting(ctx, key), ErrSettingNotFound)
}
