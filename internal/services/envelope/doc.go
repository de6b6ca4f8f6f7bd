// Package envelope encrypts and decrypts direct messages.
//
// One envelope is wrapped_key ‖ nonce ‖ ciphertext+tag, base64 encoded. The
// wrapped key block is the asymmetric modulus length and the nonce is 12
// bytes, so every split is a fixed offset; nothing on the wire is length
// prefixed. A fresh message key and nonce are drawn per call.
package envelope
