package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// RunServer blocks until ctx is cancelled or a transport fails, then shuts
// every transport down gracefully.
type Server interface {
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server, waiting at most until ctx is done.
	Shutdown(ctx context.Context) error
}
