package server

// Server is the lifecycle of the HTTP transport.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT, then shuts down
	// gracefully.
	RunServer()

	// Shutdown stops accepting requests and waits for in-flight ones up to
	// the shutdown timeout.
	Shutdown()
}
