package validators

import "errors"

// Error is a broken input rule. Its text is meant for API clients and is
// returned to them verbatim.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(msg string) error {
	return &Error{msg: msg}
}

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingSignupFields     = newError("Please provide name, email, and password")
	ErrMissingCredentials      = newError("Please provide email and password")
	ErrMissingOTPFields        = newError("Please provide email and otp")
	ErrMissingEmail            = newError("Please provide email")
	ErrMissingResetFields      = newError("Please provide token and password")
	ErrInvalidEmail            = newError("Invalid email format")
	ErrEmptyName               = newError("Name cannot be empty")
	ErrCurrentPasswordRequired = newError("Current password required to change password")

	ErrMissingRequiredFields = newError("Missing required fields")
	ErrMissingClientFields   = newError("Name and phone are required")
	ErrInvalidDate           = newError("Invalid date, expected YYYY-MM-DD")
	ErrInvalidEntryType      = newError("Invalid entry type")
	ErrInvalidEntryStatus    = newError("Invalid entry status")
	ErrInvalidPaymentMode    = newError("Invalid payment mode")
	ErrInvalidMonth          = newError("Invalid month")
	ErrInvalidYear           = newError("Invalid year")
	ErrInvalidPaymentStatus  = newError("Invalid payment status")
	ErrInvalidQuantity       = newError("Service quantity cannot be negative")
	ErrMissingSettingValue   = newError("Value is required")
	ErrEmptySettingKey       = newError("Setting key is required")
	ErrInvalidDataFormat     = newError("Invalid data format")
	ErrInvalidBulkFormat     = newError("Invalid data format. Expected array of invoices.")
)
