package domain

import "errors"

// Error kinds surfaced by the protocol layer. Callers match with errors.Is;
// wrapping adds context but never changes the kind. Decryption is never
// retried on failure and no partial plaintext is ever returned.
var (
	// ErrKeyFormat reports a malformed serialized key or identity record.
	ErrKeyFormat = errors.New("malformed key material")

	// ErrMalformedEnvelope reports an envelope or group payload that cannot
	// be decoded or is shorter than its fixed header.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrKeyUnwrap reports an asymmetric unwrap failure: wrong private key
	// or a corrupted wrapped key block.
	ErrKeyUnwrap = errors.New("key unwrap failed")

	// ErrAuthentication reports an AEAD tag mismatch: tampered ciphertext
	// or the wrong symmetric key.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrNoSession reports that no identity is persisted.
	ErrNoSession = errors.New("no identity session")

	// ErrNotFound reports a missing key-value store entry.
	ErrNotFound = errors.New("not found")
)
