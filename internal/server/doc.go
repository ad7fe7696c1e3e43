// Package server runs the HTTP transport of the application.
//
// It owns the listener lifecycle: startup, waiting for a termination signal
// and graceful shutdown that lets in-flight requests finish.
package server
