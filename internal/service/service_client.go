package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
)

type clientService struct {
	clientRepository store.ClientRepository
	validator        validators.Validator

	logger *logger.Logger
}

func NewClientService(clientRepository store.ClientRepository, validator validators.Validator, logger *logger.Logger) ClientService {
	return &clientService{
		clientRepository: clientRepository,
		validator:        validator,
		logger:           logger,
	}
}

func (s *clientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.clientRepository.ListClients(ctx)
}

func (s *clientService) GetClient(ctx context.Context, id int64) (models.Client, error) {
	client, err := s.clientRepository.GetClient(ctx, id)
	return client, notFoundAs(err, ErrClientNotFound)
}

func (s *clientService) CreateClient(ctx context.Context, client models.ClientUpdate) (models.Client, error) {
	if err := s.validator.Validate(ctx, client, validators.ClientCreateFields...); err != nil {
		return models.Client{}, err
	}

	return s.clientRepository.CreateClient(ctx, models.Client{
		Name:    *trimmed(client.Name),
		Phone:   *trimmed(client.Phone),
		Address: client.Address,
	})
}

func (s *clientService) UpdateClient(ctx context.Context, id int64, update models.ClientUpdate) (models.Client, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Client{}, err
	}

	update.Name = trimmed(update.Name)
	client, err := s.clientRepository.UpdateClient(ctx, id, update)
	return client, notFoundAs(err, ErrClientNotFound)
}

func (s *clientService) DeleteClient(ctx context.Context, id int64) error {
	return notFoundAs(s.clientRepository.DeleteClient(ctx, id), ErrClientNotFound)
}

// notFoundAs replaces store.ErrNotFound with the entity specific sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
