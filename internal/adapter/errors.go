package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("email api: bad request")
	ErrUnauthorized        = errors.New("email api: unauthorized")
	ErrForbidden           = errors.New("email api: forbidden")
	ErrNotFound            = errors.New("email api: not found")
	ErrTooManyRequests     = errors.New("email api: too many requests")
	ErrBadGateway          = errors.New("email api: bad gateway")
	ErrInternalServerError = errors.New("email api: internal server error")
	ErrEmptyRecipient      = errors.New("email has no recipient")
	ErrSendingEmail        = errors.New("error sending email")
)
