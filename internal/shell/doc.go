// Package shell implements the interactive console: a registry of command
// availability rules and a line-based REPL that hands each line to an
// executor.
//
// Availability is decided per command path ("cluster create") by a
// predicate over the session. Commands without a registered predicate are
// always available.
package shell
