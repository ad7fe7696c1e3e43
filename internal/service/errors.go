package service

import "errors"

var (
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrEmailAlreadyRegistered   = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrNotVerified              = errors.New("email is not verified")
	ErrUserNotFound             = errors.New("user not found")
	ErrInvalidOTP               = errors.New("invalid or expired otp")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
	ErrInvalidResetToken        = errors.New("invalid or expired reset token")
	ErrEmailInUse               = errors.New("email already in use")
	ErrIncorrectCurrentPassword = errors.New("incorrect current password")
	ErrNotAnImage               = errors.New("only images are allowed")
	ErrAvatarTooLarge           = errors.New("avatar is too large")
	ErrHashingPassword          = errors.New("error hashing password")

	ErrClientNotFound  = errors.New("client not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrSettingNotFound = errors.New("setting not found")

	ErrCannotDeleteSelf = errors.New("cannot delete own admin account")
	ErrNotAdmin         = errors.New("admin role required")
)
