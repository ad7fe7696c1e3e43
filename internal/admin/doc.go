// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package admin implements the operator console behind cmd/admin.
//
// It talks to the database through the same services as the API, so the
// console sees exactly what clients see, and renders results with the tui
// package.
package admin
