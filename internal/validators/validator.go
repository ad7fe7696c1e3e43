package validators

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/finance-flow/models"
)

const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPhone       = "phone"
	FieldDate        = "date"
	FieldClientName  = "clientName"
	FieldAmount      = "amount"
	FieldType        = "type"
	FieldStatus      = "status"
	FieldPaymentMode = "paymentMode"
)

const dateLayout = time.DateOnly

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RequestValidator checks the request models of the finance API.
type RequestValidator struct {
}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value)
	case *models.SignupRequest:
		return v.validateSignup(*value)

	case models.LoginRequest:
		return v.validateLogin(value)
	case *models.LoginRequest:
		return v.validateLogin(*value)

	case models.VerifyOTPRequest:
		return v.validateVerifyOTP(value)
	case *models.VerifyOTPRequest:
		return v.validateVerifyOTP(*value)

	case models.ForgotPasswordRequest:
		return v.validateForgotPassword(value)
	case *models.ForgotPasswordRequest:
		return v.validateForgotPassword(*value)

	case models.ResetPasswordRequest:
		return v.validateResetPassword(value)
	case *models.ResetPasswordRequest:
		return v.validateResetPassword(*value)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(value)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(*value)

	case models.ClientUpdate:
		return v.validateClientUpdate(value, fields...)
	case *models.ClientUpdate:
		return v.validateClientUpdate(*value, fields...)

	case models.EntryUpdate:
		return v.validateEntryUpdate(value, fields...)
	case *models.EntryUpdate:
		return v.validateEntryUpdate(*value, fields...)

	case models.EntryFilter:
		return v.validateEntryFilter(value)
	case *models.EntryFilter:
		return v.validateEntryFilter(*value)

	case models.Invoice:
		return v.validateInvoice(value)
	case *models.Invoice:
		return v.validateInvoice(*value)

	case models.InvoiceUpdate:
		return v.validateInvoiceUpdate(value)
	case *models.InvoiceUpdate:
		return v.validateInvoiceUpdate(*value)

	case models.SettingUpdate:
		return v.validateSettingUpdate(value)
	case *models.SettingUpdate:
		return v.validateSettingUpdate(*value)

	case models.DataDocument:
		return v.validateDataDocument(value)
	case *models.DataDocument:
		return v.validateDataDocument(*value)

	case models.BulkImportRequest:
		return v.validateBulkImport(value)
	case *models.BulkImportRequest:
		return v.validateBulkImport(*value)

	default:
		return ErrUnsupportedType
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func isDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
