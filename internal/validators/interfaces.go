// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation and enforcement of business
// rules across the application.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - Error: a broken rule whose message is safe to show to API clients.
//
// Usage patterns:
//  1. Inject a Validator into services.
//  2. Call Validate with context, value, and optional field names to enforce
//     rules. Without field names every rule of the type is checked.
//  3. Use [errors.As] with *Error at the transport boundary to turn a rule
//     violation into a 400 response.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
