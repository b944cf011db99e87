// Package config provides configuration loading, merging, and validation
// for the book-collections server and CLI client.
//
// Server configuration is assembled from several sources in increasing
// priority (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON or YAML config file
//  3. Environment variables (a .env file is loaded first)
//  4. Command-line flags
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the CLI client.
package config
