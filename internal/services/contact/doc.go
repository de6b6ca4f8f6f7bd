// Package contact keeps the local keyring of peers.
//
// A contact is a user identifier, a display name and an imported public key.
// The directory never talks to a network: keys are handed in out of band and
// validated on the way in, and everything downstream (envelopes, group
// fan-out, safety numbers) resolves peers through it.
package contact
