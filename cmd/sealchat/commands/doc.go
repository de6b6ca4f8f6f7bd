// Package commands defines the sealchat CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - init     Create an identity and print the one-time recovery secret
//   - recover  Restore an identity from its secret and escrow blob
//   - whoami   Print the active identity and shareable public key
//   - contact  Manage the local keyring (add, list, remove)
//   - encrypt  Seal a direct message for one contact
//   - decrypt  Open a direct message
//   - group    Create groups, move their records, code group messages
//   - verify   Print the safety number shared with a contact
//   - logout   Erase the local identity
//
// # Implementation
//
// The root command builds the dependency graph (crypto suite, file store,
// protocol services, session) before any subcommand runs, so handlers share
// one app context. Blobs a transport would normally carry move through
// arguments, files, stdin and stdout instead; the CLI never opens a network
// connection.
package commands
