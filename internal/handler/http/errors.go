// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself, before a request
// reaches the service layer. Callers can match against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when the request body is not valid JSON for
	// the expected shape.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidID is returned when a numeric path parameter cannot be parsed.
	ErrInvalidID = errors.New("invalid id")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header of an
	// import does not match the body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrTooManyRequests is returned by the rate limit middleware.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInvalidQuery is returned when a numeric query or path parameter
	// (month, year) cannot be parsed.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrNoFileUploaded is returned when the avatar form field is missing.
	ErrNoFileUploaded = errors.New("no file uploaded")
)

// Error codes carried in the error envelope.
const (
	codeValidation     = "VALIDATION_ERROR"
	codeDuplicateEmail = "DUPLICATE_EMAIL"
	codeDuplicate      = "DUPLICATE_ERROR"
	codeConstraint     = "CONSTRAINT_ERROR"
	codeAuth           = "AUTH_ERROR"
	codeNotVerified    = "NOT_VERIFIED"
	codeNotFound       = "NOT_FOUND"
	codeUnauthorized   = "UNAUTHORIZED"
	codeForbidden      = "FORBIDDEN"
	codeRateLimited    = "RATE_LIMITED"
	codeServer         = "SERVER_ERROR"
)
