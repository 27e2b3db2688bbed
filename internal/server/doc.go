// Package server wires and runs the long-lived parts of the daemon.
//
// It starts the background workers (the sync scheduler) and, when an address
// is configured, the HTTP trigger API, then waits for a termination signal
// and shuts everything down gracefully.
package server
