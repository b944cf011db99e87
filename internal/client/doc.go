// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the book-collections command-line client.
//
// Each invocation runs one subcommand against the server through an
// [adapter.ServerAdapter] and prints the JSON result to stdout. Logs go to
// stderr. The session token is taken from BOOKS_TOKEN or the -token flag;
// "login" prints a token that can be exported for later commands.
package client
