package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tokenInLink = regexp.MustCompile(`token=([0-9a-f]+)`)
	otpInText   = regexp.MustCompile(`\b(\d{6})\b`)
)

// TestAuthFlow walks an account from signup through a trusted second login
// against a real SQLite database.
func TestAuthFlow(t *testing.T) {
	repos := newTestRepositories(t)
	mail := &outbox{}
	svc := NewAuthService(repos.UserRepository, repos.LoginHistoryRepository, nil, mail, validators.NewRequestValidator(), testAppConfig, logger.Nop())
	ctx := context.Background()

	_, err := svc.Signup(ctx, models.SignupRequest{Name: "Asha", Email: "asha@shop.in", Password: "s3cret"})
	require.NoError(t, err)

	login := models.LoginRequest{Email: "asha@shop.in", Password: "s3cret", IPAddress: "10.0.0.1", UserAgent: "Firefox/120"}

	_, err = svc.Login(ctx, login)
	assert.ErrorIs(t, err, ErrNotVerified)

	link := tokenInLink.FindStringSubmatch(mail.last(t).Text)
	require.Len(t, link, 2)
	require.NoError(t, svc.VerifyEmail(ctx, link[1]))
	assert.ErrorIs(t, svc.VerifyEmail(ctx, link[1]), ErrInvalidVerificationToken, "token is single use")

	res, err := svc.Login(ctx, login)
	require.NoError(t, err)
	require.True(t, res.RequiresOTP, "first login from a device needs a passcode")

	otp := otpInText.FindStringSubmatch(mail.last(t).Text)
	require.Len(t, otp, 2)

	_, err = svc.VerifyOTP(ctx, models.VerifyOTPRequest{Email: login.Email, OTP: "000000", UserAgent: login.UserAgent})
	assert.ErrorIs(t, err, ErrInvalidOTP)

	res, err = svc.VerifyOTP(ctx, models.VerifyOTPRequest{Email: login.Email, OTP: otp[1], IPAddress: login.IPAddress, UserAgent: login.UserAgent})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.VerifyOTP(ctx, models.VerifyOTPRequest{Email: login.Email, OTP: otp[1], UserAgent: login.UserAgent})
	assert.ErrorIs(t, err, ErrInvalidOTP, "passcode is single use")

	sent := mail.count()
	res, err = svc.Login(ctx, login)
	require.NoError(t, err)
	assert.False(t, res.RequiresOTP)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, sent, mail.count(), "trusted device gets no email")

	login.UserAgent = "Safari"
	res, err = svc.Login(ctx, login)
	require.NoError(t, err)
	assert.True(t, res.RequiresOTP)
}

func TestPasswordResetFlow(t *testing.T) {
	repos := newTestRepositories(t)
	mail := &outbox{}
	svc := NewAuthService(repos.UserRepository, repos.LoginHistoryRepository, nil, mail, validators.NewRequestValidator(), testAppConfig, logger.Nop())
	ctx := context.Background()

	_, err := svc.Signup(ctx, models.SignupRequest{Name: "Asha", Email: "asha@shop.in", Password: "old"})
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "asha@shop.in"}))
	link := tokenInLink.FindStringSubmatch(mail.last(t).Text)
	require.Len(t, link, 2)

	require.NoError(t, svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: link[1], Password: "new"}))
	assert.ErrorIs(t, svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: link[1], Password: "again"}), ErrInvalidResetToken)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "asha@shop.in", Password: "old"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, models.LoginRequest{Email: "asha@shop.in", Password: "new"})
	assert.ErrorIs(t, err, ErrNotVerified)
}
