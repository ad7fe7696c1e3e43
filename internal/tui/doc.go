// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders the admin console: lipgloss tables for ledger
// listings and a bubbletea prompt that guards destructive commands.
package tui
