package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/service"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/utils"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
)

const internalErrorMessage = "Internal server error"

type errorResponse struct {
	status  int
	code    string
	message string
}

// errorResponses is checked in order. Entity specific sentinels wrap
// store.ErrNotFound, so they come before the generic store entries.
var errorResponses = []struct {
	target error
	resp   errorResponse
}{
	{utils.ErrNoAuthorizationHeader, errorResponse{http.StatusUnauthorized, codeUnauthorized, "No token provided"}},
	{utils.ErrInvalidTokenFormat, errorResponse{http.StatusUnauthorized, codeUnauthorized, "Invalid token format"}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusForbidden, codeForbidden, "Invalid or expired token"}},
	{service.ErrNotAdmin, errorResponse{http.StatusForbidden, codeForbidden, "Admin access required"}},

	{service.ErrEmailAlreadyRegistered, errorResponse{http.StatusConflict, codeDuplicateEmail, "Email already registered"}},
	{service.ErrEmailInUse, errorResponse{http.StatusConflict, codeDuplicateEmail, "Email already in use"}},
	{service.ErrInvalidCredentials, errorResponse{http.StatusUnauthorized, codeAuth, "Invalid email or password"}},
	{service.ErrIncorrectCurrentPassword, errorResponse{http.StatusUnauthorized, codeAuth, "Incorrect current password"}},
	{service.ErrNotVerified, errorResponse{http.StatusForbidden, codeNotVerified, "Please verify your email before logging in"}},
	{service.ErrInvalidOTP, errorResponse{http.StatusBadRequest, codeValidation, "Invalid or expired OTP"}},
	{service.ErrInvalidVerificationToken, errorResponse{http.StatusBadRequest, codeValidation, "Invalid or expired verification link"}},
	{service.ErrInvalidResetToken, errorResponse{http.StatusBadRequest, codeValidation, "Invalid or expired reset token"}},
	{service.ErrNotAnImage, errorResponse{http.StatusBadRequest, codeValidation, "Only image files are allowed"}},
	{service.ErrAvatarTooLarge, errorResponse{http.StatusBadRequest, codeValidation, "Image must not exceed 5MB"}},
	{service.ErrCannotDeleteSelf, errorResponse{http.StatusBadRequest, codeValidation, "Cannot delete your own admin account."}},

	{service.ErrUserNotFound, errorResponse{http.StatusNotFound, codeNotFound, "User not found"}},
	{service.ErrClientNotFound, errorResponse{http.StatusNotFound, codeNotFound, "Client not found"}},
	{service.ErrEntryNotFound, errorResponse{http.StatusNotFound, codeNotFound, "Entry not found"}},
	{service.ErrInvoiceNotFound, errorResponse{http.StatusNotFound, codeNotFound, "Invoice not found"}},
	{service.ErrSettingNotFound, errorResponse{http.StatusNotFound, codeNotFound, "Setting not found"}},

	{ErrInvalidJSON, errorResponse{http.StatusBadRequest, codeValidation, "Invalid JSON was passed"}},
	{utils.ErrEmptyBody, errorResponse{http.StatusBadRequest, codeValidation, "Request body is required"}},
	{ErrInvalidID, errorResponse{http.StatusBadRequest, codeValidation, "Invalid id"}},
	{ErrInvalidQuery, errorResponse{http.StatusBadRequest, codeValidation, "Invalid query parameter"}},
	{ErrIntegrityCheckFailed, errorResponse{http.StatusBadRequest, codeValidation, "Integrity check failed"}},
	{ErrNoFileUploaded, errorResponse{http.StatusBadRequest, codeValidation, "No file uploaded"}},
	{ErrTooManyRequests, errorResponse{http.StatusTooManyRequests, codeRateLimited, "Too many requests, please try again later"}},

	{store.ErrDuplicate, errorResponse{http.StatusBadRequest, codeDuplicate, "A record with this value already exists"}},
	{store.ErrConstraintViolation, errorResponse{http.StatusBadRequest, codeConstraint, "Database constraint violation"}},
	{store.ErrNotFound, errorResponse{http.StatusNotFound, codeNotFound, "Resource not found"}},
}

// responseFromError picks the status, code and message for err. Validation
// errors carry their own message. Anything unknown becomes a 500 whose
// message is hidden in production.
func responseFromError(err error, production bool) errorResponse {
	var verr *validators.Error
	if errors.As(err, &verr) {
		return errorResponse{http.StatusBadRequest, codeValidation, verr.Error()}
	}

	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.resp
		}
	}

	message := err.Error()
	if production {
		message = internalErrorMessage
	}
	return errorResponse{http.StatusInternalServerError, codeServer, message}
}

// fail writes the error envelope for err. Server errors are logged at error
// level, client errors at debug.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	resp := responseFromError(err, h.production)

	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", resp.status).Msg("request rejected")
	}

	if _, werr := utils.WriteJSON(w, models.Fail(resp.code, resp.message), resp.status); werr != nil {
		log.Err(werr).Str("func", "*Handler.fail").Msg("error writing response")
	}
}
