package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/mock"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAdminService_DeleteUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAdminService(users, logger.Nop())
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteUser(ctx, 1, 1), ErrCannotDeleteSelf)

	users.EXPECT().DeleteUser(ctx, int64(2)).Return(store.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, 1, 2), ErrUserNotFound)

	users.EXPECT().DeleteUser(ctx, int64(3)).Return(nil)
	assert.NoError(t, svc.DeleteUser(ctx, 1, 3))
}

func TestAdminService_PromoteUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAdminService(users, logger.Nop())
	ctx := context.Background()

	users.EXPECT().SetRole(ctx, "ops@shop.in", models.RoleAdmin).Return(nil)
	assert.NoError(t, svc.PromoteUser(ctx, " ops@shop.in "))

	users.EXPECT().SetRole(ctx, "ghost@shop.in", models.RoleAdmin).Return(store.ErrNotFound)
	assert.ErrorIs(t, svc.PromoteUser(ctx, "ghost@shop.in"), ErrUserNotFound)
}

func TestAdminService_RequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		user    models.User
		findErr error
		wantErr error
	}{
		{name: "admin", user: models.User{ID: 1, Role: models.RoleAdmin}},
		{name: "regular user", user: models.User{ID: 1, Role: models.RoleUser}, wantErr: ErrNotAdmin},
		{name: "deleted account", findErr: store.ErrNotFound, wantErr: ErrNotAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mock.NewMockUserRepository(ctrl)
			svc := NewAdminService(users, logger.Nop())

			users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(tt.user, tt.findErr)

			err := svc.RequireAdmin(context.Background(), 1)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}
