package validators

import "github.com/MKhiriev/finance-flow/models"

func (v *RequestValidator) validateSignup(req models.SignupRequest) error {
	if blank(req.Name) || blank(req.Email) || req.Password == "" {
		return ErrMissingSignupFields
	}
	if !isEmail(req.Email) {
		return ErrInvalidEmail
	}
	return nil
}

func (v *RequestValidator) validateLogin(req models.LoginRequest) error {
	if blank(req.Email) || req.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

func (v *RequestValidator) validateVerifyOTP(req models.VerifyOTPRequest) error {
	if blank(req.Email) || blank(req.OTP) {
		return ErrMissingOTPFields
	}
	return nil
}

func (v *RequestValidator) validateForgotPassword(req models.ForgotPasswordRequest) error {
	if blank(req.Email) {
		return ErrMissingEmail
	}
	return nil
}

func (v *RequestValidator) validateResetPassword(req models.ResetPasswordRequest) error {
	if blank(req.Token) || req.Password == "" {
		return ErrMissingResetFields
	}
	return nil
}

// validateProfileUpdate checks only the supplied fields. The current password
// itself is verified by the service against the stored hash.
func (v *RequestValidator) validateProfileUpdate(upd models.ProfileUpdate) error {
	if upd.Name != nil && blank(*upd.Name) {
		return ErrEmptyName
	}
	if upd.Email != nil && !isEmail(*upd.Email) {
		return ErrInvalidEmail
	}
	if upd.NewPassword != nil && *upd.NewPassword != "" {
		if upd.CurrentPassword == nil || *upd.CurrentPassword == "" {
			return ErrCurrentPasswordRequired
		}
	}
	return nil
}
