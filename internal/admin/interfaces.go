// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package admin

import "context"

// Runner is the lifecycle contract of the console: it executes one command
// line and returns when the command is done.
type Runner interface {
	Run(ctx context.Context, args []string) error
}
