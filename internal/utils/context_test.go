package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/finance-flow/models"
	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "claims", ClaimsCtxKey.String())
}

func TestWithClaims_RoundTrip(t *testing.T) {
	ctx := WithClaims(context.Background(), models.Claims{UserID: 5, Email: "a@b.co"})

	claims, ok := GetClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "a@b.co", claims.Email)

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	id, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, "not claims")

	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
}

func TestGetUserIDFromContext_ZeroUserID(t *testing.T) {
	ctx := WithClaims(context.Background(), models.Claims{})

	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
}

func TestGetClaimsFromContext_PlainStringKeyDoesNotCollide(t *testing.T) {
	//nolint:staticcheck
	ctx := context.WithValue(context.Background(), "claims", models.Claims{UserID: 1})

	_, ok := GetClaimsFromContext(ctx)
	assert.False(t, ok)
}
