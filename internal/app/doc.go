// Package app wires application dependencies for the CLI.
//
// New builds the crypto suite, the file-backed store and the protocol
// services from Config, and owns the session object every command shares.
package app
