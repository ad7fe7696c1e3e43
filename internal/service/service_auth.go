// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/finance-flow/internal/adapter"
	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/utils"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpMin = 100000
	otpMax = 999999

	// secretTokenBytes is the entropy of verification and reset tokens.
	secretTokenBytes = 32
)

// authService is the concrete implementation of AuthService.
// It keeps users and their trusted devices in the credential store, hashes
// passwords with bcrypt, and signs session tokens with HS256.
type authService struct {
	userRepository         store.UserRepository
	loginHistoryRepository store.LoginHistoryRepository
	avatarStorage          store.AvatarStorage

	// mailer receives verification, passcode and reset emails. Its failures
	// are logged and never fail the calling operation.
	mailer    adapter.EmailSender
	validator validators.Validator
	idGen     *utils.UUIDGenerator

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration
	bcryptCost    int
	otpTTL        time.Duration
	resetTTL      time.Duration
	publicURL     string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	loginHistoryRepository store.LoginHistoryRepository,
	avatarStorage store.AvatarStorage,
	mailer adapter.EmailSender,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository:         userRepository,
		loginHistoryRepository: loginHistoryRepository,
		avatarStorage:          avatarStorage,
		mailer:                 mailer,
		validator:              validator,
		idGen:                  utils.NewUUIDGenerator(),
		tokenSignKey:           cfg.TokenSignKey,
		tokenIssuer:            cfg.TokenIssuer,
		tokenDuration:          cfg.TokenDuration,
		bcryptCost:             cost,
		otpTTL:                 cfg.OTPTTL,
		resetTTL:               cfg.ResetTokenTTL,
		publicURL:              strings.TrimRight(cfg.PublicURL, "/"),
		now:                    func() time.Time { return time.Now().UTC() },
		logger:                 logger,
	}
}

// Signup creates an unverified account and emails the verification link.
// No session token is issued.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}
	email := strings.TrimSpace(req.Email)

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, ErrEmailAlreadyRegistered
	case !errors.Is(err, store.ErrNotFound):
		log.Err(err).Str("func", "*authService.Signup").Msg("error checking email")
		return models.User{}, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	verificationToken, err := utils.RandomHex(secretTokenBytes)
	if err != nil {
		return models.User{}, fmt.Errorf("error generating verification token: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Name:              strings.TrimSpace(req.Name),
		Email:             email,
		PasswordHash:      hash,
		Role:              models.RoleUser,
		VerificationToken: &verificationToken,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return models.User{}, ErrEmailAlreadyRegistered
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.send(ctx, verificationEmail(user, a.publicURL, verificationToken))
	log.Info().Int64("user_id", user.ID).Msg("user signed up")

	return user, nil
}

// Login checks the password and then the device. A user agent already seen
// for this user gets a session token straight away; any other device gets a
// passcode by email and must finish with VerifyOTP.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.LoginResult{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		return models.LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.LoginResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.passwordMatches(user.PasswordHash, req.Password) {
		log.Warn().Int64("user_id", user.ID).Msg("wrong password")
		return models.LoginResult{}, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return models.LoginResult{}, ErrNotVerified
	}

	known, err := a.loginHistoryRepository.IsKnownDevice(ctx, user.ID, req.UserAgent)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("device lookup failed")
		return models.LoginResult{}, fmt.Errorf("device lookup failed: %w", err)
	}

	if known {
		return a.completeLogin(ctx, user, req.IPAddress, req.UserAgent)
	}

	otp, err := utils.RandomDigits(otpMin, otpMax)
	if err != nil {
		return models.LoginResult{}, fmt.Errorf("error generating otp: %w", err)
	}
	if err = a.userRepository.SetOTP(ctx, user.ID, otp, a.now().Add(a.otpTTL)); err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("error storing otp")
		return models.LoginResult{}, fmt.Errorf("error storing otp: %w", err)
	}

	a.send(ctx, otpEmail(user, otp, a.otpTTL))
	log.Info().Int64("user_id", user.ID).Msg("login from unknown device, otp sent")

	return models.LoginResult{RequiresOTP: true, Email: user.Email}, nil
}

// VerifyOTP consumes the passcode issued by Login. Success trusts the device,
// marks the email verified and issues a session token.
func (a *authService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.LoginResult{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		return models.LoginResult{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyOTP").Msg("user search by email failed")
		return models.LoginResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	otp := strings.TrimSpace(req.OTP)
	if !a.otpMatches(user, otp) {
		return models.LoginResult{}, ErrInvalidOTP
	}

	// a concurrent request that consumed the same code first wins
	err = a.userRepository.ConsumeOTP(ctx, user.ID, otp)
	if errors.Is(err, store.ErrNotFound) {
		return models.LoginResult{}, ErrInvalidOTP
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyOTP").Msg("error clearing otp")
		return models.LoginResult{}, fmt.Errorf("error clearing otp: %w", err)
	}

	if !user.IsVerified {
		if err = a.userRepository.MarkVerified(ctx, user.ID); err != nil {
			log.Err(err).Str("func", "*authService.VerifyOTP").Msg("error marking user verified")
			return models.LoginResult{}, fmt.Errorf("error marking user verified: %w", err)
		}
		user.IsVerified = true
		user.VerificationToken = nil
	}
	user.OTP, user.OTPExpiry = nil, nil

	return a.completeLogin(ctx, user, req.IPAddress, req.UserAgent)
}

func (a *authService) otpMatches(user models.User, otp string) bool {
	if user.OTP == nil || user.OTPExpiry == nil || otp == "" {
		return false
	}
	if !a.now().Before(*user.OTPExpiry) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*user.OTP), []byte(otp)) == 1
}

// completeLogin records the device and issues the session token.
func (a *authService) completeLogin(ctx context.Context, user models.User, ip, userAgent string) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	err := a.loginHistoryRepository.RecordLogin(ctx, models.LoginHistory{
		UserID:    user.ID,
		IPAddress: ip,
		UserAgent: userAgent,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.completeLogin").Msg("error recording login")
		return models.LoginResult{}, fmt.Errorf("error recording login: %w", err)
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.completeLogin").Msg("error creating token")
		return models.LoginResult{}, err
	}

	log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return models.LoginResult{Token: token.String(), User: &user}, nil
}

// VerifyEmail consumes the token from the signup link.
func (a *authService) VerifyEmail(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidVerificationToken
	}

	user, err := a.userRepository.FindUserByVerificationToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidVerificationToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyEmail").Msg("user search by token failed")
		return fmt.Errorf("user search by token failed: %w", err)
	}

	if err = a.userRepository.MarkVerified(ctx, user.ID); err != nil {
		log.Err(err).Str("func", "*authService.VerifyEmail").Msg("error marking user verified")
		return fmt.Errorf("error marking user verified: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Msg("email verified")
	return nil
}

// ForgotPassword emails a reset token when the account exists. The outcome
// is the same either way so that callers cannot probe for accounts.
func (a *authService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		log.Debug().Msg("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	token, err := utils.RandomHex(secretTokenBytes)
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}
	if err = a.userRepository.SetResetToken(ctx, user.ID, token, a.now().Add(a.resetTTL)); err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Msg("error storing reset token")
		return fmt.Errorf("error storing reset token: %w", err)
	}

	a.send(ctx, resetEmail(user, a.publicURL, token, a.resetTTL))
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return err
	}

	user, err := a.userRepository.FindUserByResetToken(ctx, strings.TrimSpace(req.Token))
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ResetPassword").Msg("user search by token failed")
		return fmt.Errorf("user search by token failed: %w", err)
	}

	if user.ResetTokenExpiry == nil || !a.now().Before(*user.ResetTokenExpiry) {
		return ErrInvalidResetToken
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return err
	}

	if err = a.userRepository.ResetPassword(ctx, user.ID, hash); err != nil {
		log.Err(err).Str("func", "*authService.ResetPassword").Msg("error resetting password")
		return fmt.Errorf("error resetting password: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Msg("password reset")
	return nil
}

func (a *authService) GetMe(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.GetMe").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the supplied fields. A password change needs the
// current password; the hash is left alone otherwise.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, update); err != nil {
		return models.User{}, err
	}

	user, err := a.GetMe(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	changes := models.UserChanges{
		Name:   trimmed(update.Name),
		Phone:  update.Phone,
		Avatar: update.Avatar,
	}

	if email := trimmed(update.Email); email != nil && *email != user.Email {
		taken, err := a.userRepository.EmailTakenByOther(ctx, *email, userID)
		if err != nil {
			log.Err(err).Str("func", "*authService.UpdateProfile").Msg("error checking email")
			return models.User{}, fmt.Errorf("error checking email: %w", err)
		}
		if taken {
			return models.User{}, ErrEmailInUse
		}
		changes.Email = email
	}

	if update.NewPassword != nil && *update.NewPassword != "" {
		if !a.passwordMatches(user.PasswordHash, *update.CurrentPassword) {
			return models.User{}, ErrIncorrectCurrentPassword
		}
		hash, err := a.hashPassword(*update.NewPassword)
		if err != nil {
			return models.User{}, err
		}
		changes.PasswordHash = &hash
	}

	if changes.IsEmpty() {
		return user, nil
	}

	updated, err := a.userRepository.UpdateUser(ctx, userID, changes)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return models.User{}, ErrEmailInUse
	case errors.Is(err, store.ErrNotFound):
		return models.User{}, ErrUserNotFound
	case err != nil:
		log.Err(err).Str("func", "*authService.UpdateProfile").Msg("error updating profile")
		return models.User{}, fmt.Errorf("error updating profile: %w", err)
	}

	return updated, nil
}

// UploadAvatar stores the image and points the user's avatar at it. The
// previous avatar file is removed on a best-effort basis.
func (a *authService) UploadAvatar(ctx context.Context, userID int64, upload models.AvatarUpload) (models.User, error) {
	log := logger.FromContext(ctx)

	if !strings.HasPrefix(strings.ToLower(upload.ContentType), "image/") {
		return models.User{}, ErrNotAnImage
	}
	if upload.Size > models.MaxAvatarSize {
		return models.User{}, ErrAvatarTooLarge
	}

	user, err := a.GetMe(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	name := "avatar-" + a.idGen.Generate() + strings.ToLower(filepath.Ext(upload.FileName))
	path, err := a.avatarStorage.Save(ctx, name, upload.ContentType, upload.Body)
	if err != nil {
		log.Err(err).Str("func", "*authService.UploadAvatar").Msg("error storing avatar")
		return models.User{}, fmt.Errorf("error storing avatar: %w", err)
	}

	updated, err := a.userRepository.UpdateUser(ctx, userID, models.UserChanges{Avatar: &path})
	if err != nil {
		log.Err(err).Str("func", "*authService.UploadAvatar").Msg("error saving avatar path")
		if delErr := a.avatarStorage.Delete(ctx, path); delErr != nil {
			log.Err(delErr).Str("path", path).Msg("error removing orphaned avatar")
		}
		return models.User{}, fmt.Errorf("error saving avatar path: %w", err)
	}

	if user.Avatar != nil && *user.Avatar != "" && *user.Avatar != path {
		if err = a.avatarStorage.Delete(ctx, *user.Avatar); err != nil {
			log.Warn().Err(err).Str("path", *user.Avatar).Msg("error removing previous avatar")
		}
	}

	return updated, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}
	return string(hash), nil
}

func (a *authService) passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (a *authService) send(ctx context.Context, msg models.EmailMessage) {
	if err := a.mailer.Send(ctx, msg); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*authService.send").
			Str("subject", msg.Subject).
			Msg("email was not queued")
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
