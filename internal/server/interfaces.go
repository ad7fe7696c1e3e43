package server

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves requests until a termination signal arrives, then
	// shuts down gracefully and returns.
	RunServer()

	// Shutdown stops the server, letting in-flight requests complete.
	Shutdown()
}
