// Package server runs the HTTP API and the optional gRPC health endpoint.
//
// RunServer binds every configured listener up front and serves until the
// run context is cancelled; shutdown is then bounded by the configured
// shutdown timeout. Signal handling is left to the caller.
package server
