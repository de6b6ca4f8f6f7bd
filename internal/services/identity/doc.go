// Package identity manages the local cryptographic identity.
//
// It derives the stable user identifier from the recovery secret, generates
// the keypair, seals the private key into an escrow blob so the same secret
// can recover the identity later, and persists the identity triple via the
// domain.KeyValueStore.
package identity
