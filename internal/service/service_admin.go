package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/models"
)

type adminService struct {
	userRepository store.UserRepository

	logger *logger.Logger
}

func NewAdminService(userRepository store.UserRepository, logger *logger.Logger) AdminService {
	return &adminService{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.UserOverview, error) {
	return s.userRepository.ListUsers(ctx)
}

// DeleteUser removes an account together with its login history. Admins
// cannot remove themselves.
func (s *adminService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return ErrCannotDeleteSelf
	}

	err := s.userRepository.DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Int64("actor_id", actorID).Int64("user_id", userID).Msg("user deleted")
	return nil
}

func (s *adminService) PromoteUser(ctx context.Context, email string) error {
	err := s.userRepository.SetRole(ctx, strings.TrimSpace(email), models.RoleAdmin)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("error promoting user: %w", err)
	}

	logger.FromContext(ctx).Info().Str("email", email).Msg("user promoted to admin")
	return nil
}

func (s *adminService) RequireAdmin(ctx context.Context, userID int64) error {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotAdmin
	}
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}
