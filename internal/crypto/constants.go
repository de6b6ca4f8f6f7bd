package crypto

// Fixed sizes shared by the wire formats and the escrow blob.
const (
	// SymmetricKeySize is the AES-256 key length.
	SymmetricKeySize = 32
	// NonceSize is the GCM nonce length.
	NonceSize = 12
	// TagSize is the GCM authentication tag length appended to ciphertext.
	TagSize = 16
	// SaltSize is the escrow KDF salt length.
	SaltSize = 16
)
