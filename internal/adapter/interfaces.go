// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the finance-flow backend.
//
// The primary abstraction is [EmailSender], which decouples the service layer
// from the mail provider. The package ships an HTTP/JSON implementation
// ([NewHTTPEmailSender]) and a logging fallback ([NewLogEmailSender]) used
// when no provider is configured.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] on provider failures
// (e.g. [ErrUnauthorized] for 401, [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/finance-flow/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/email_sender_mock.go -package=mock

// EmailSender delivers a single email message.
//
// Implementations must be safe for concurrent use: the mail dispatcher calls
// Send from several goroutines.
type EmailSender interface {
	// Send delivers msg. It returns [ErrEmptyRecipient] when msg.To is blank
	// and a wrapped sentinel from errors.go when the provider rejects the
	// message.
	Send(ctx context.Context, msg models.EmailMessage) error
}
