// Package crypto implements the primitive suite behind the protocol layer.
//
// Suite provides RSA-OAEP key wrapping, AES-256-GCM sealing, SHA-256
// digests and DER key serialization from an enumerated Params set. The
// package also carries the escrow blob format (argon2id + ChaCha20-Poly1305)
// used to back up the private key under the recovery secret, plus small
// encoding and key-fingerprint helpers.
package crypto
