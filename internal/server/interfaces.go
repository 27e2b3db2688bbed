package server

// Server is the lifecycle contract of the daemon.
type Server interface {
	// RunServer starts the workers and the API, then blocks until SIGTERM,
	// SIGINT or SIGQUIT and shuts everything down.
	RunServer()

	// Shutdown stops the API first, then the workers, waiting for running
	// sessions to finish.
	Shutdown()
}
