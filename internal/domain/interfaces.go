package domain

import "crypto/rsa"

// CryptoProvider is the injected cryptographic capability. Every component
// reaches the primitives through it, so tests can substitute a suite with a
// seeded random stream. Implementations must be safe for concurrent use.
type CryptoProvider interface {
	// RandomBytes returns n bytes from the suite's random source.
	RandomBytes(n int) ([]byte, error)
	// GenerateKeyPair creates a fresh asymmetric keypair.
	GenerateKeyPair() (*rsa.PrivateKey, error)
	// GenerateSymmetricKey creates a fresh AEAD key.
	GenerateSymmetricKey() ([]byte, error)

	// WrapKey asymmetrically encrypts a symmetric key for pub. The output
	// block length is always WrappedKeySize.
	WrapKey(pub *rsa.PublicKey, key []byte) ([]byte, error)
	// UnwrapKey is the inverse of WrapKey.
	UnwrapKey(priv *rsa.PrivateKey, wrapped []byte) ([]byte, error)

	// Seal authenticated-encrypts plaintext, returning ciphertext with the
	// integrity tag appended. Open is the inverse and fails on any tamper.
	Seal(key, nonce, plaintext []byte) ([]byte, error)
	Open(key, nonce, ciphertext []byte) ([]byte, error)

	// Hash digests data with the suite hash.
	Hash(data []byte) []byte

	// Export/Import convert keys to and from their transportable DER forms
	// (PKIX/SPKI for public, PKCS#8 for private).
	ExportPublicKey(pub *rsa.PublicKey) ([]byte, error)
	ImportPublicKey(der []byte) (*rsa.PublicKey, error)
	ExportPrivateKey(priv *rsa.PrivateKey) ([]byte, error)
	ImportPrivateKey(der []byte) (*rsa.PrivateKey, error)

	// WrappedKeySize is the fixed wrapped-key block length in bytes.
	WrappedKeySize() int
	// NonceSize is the AEAD nonce length in bytes.
	NonceSize() int
}

// KeyValueStore persists opaque blobs under string keys. Get returns
// ErrNotFound for missing keys; Remove of a missing key is not an error.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// IdentityService derives, persists and recovers the local identity.
type IdentityService interface {
	// GenerateSecret draws a fresh recovery secret.
	GenerateSecret() (RecoverySecret, error)
	// DeriveUserID maps a secret to its stable public identifier.
	DeriveUserID(secret RecoverySecret) UserID
	// NewKeyPair generates a fresh random keypair. It is independent of the
	// secret; recovery reproduces it via the escrow blob instead.
	NewKeyPair() (*rsa.PrivateKey, error)

	ExportPublic(pub *rsa.PublicKey) ([]byte, error)
	ExportPrivate(priv *rsa.PrivateKey) ([]byte, error)
	ImportPublic(der []byte) (*rsa.PublicKey, error)
	ImportPrivate(der []byte) (*rsa.PrivateKey, error)

	// Enroll performs signup: secret, identifier, keypair, escrow blob, all
	// persisted. The secret and blob are returned for one-time display and
	// safekeeping.
	Enroll() (*Identity, RecoverySecret, []byte, error)
	// Recover rebuilds the identity from the secret and its escrow blob.
	Recover(secret RecoverySecret, escrow []byte) (*Identity, error)

	Store(id *Identity) error
	Load() (*Identity, error)
	Clear() error
}

// EnvelopeService encrypts and decrypts direct messages.
type EnvelopeService interface {
	Encrypt(plaintext []byte, recipient *rsa.PublicKey) (string, error)
	Decrypt(envelope string, priv *rsa.PrivateKey) ([]byte, error)
	// EncryptDual produces the recipient copy and the sender's own copy.
	EncryptDual(plaintext []byte, recipient, sender *rsa.PublicKey) (*DirectMessage, error)
}

// GroupService creates group keys, fans them out per member and manages
// persisted group records.
type GroupService interface {
	NewGroupKey() (GroupKey, error)
	WrapForMember(key GroupKey, member *rsa.PublicKey) ([]byte, error)
	UnwrapOwn(wrapped []byte, priv *rsa.PrivateKey) (GroupKey, error)
	// Distribute wraps key once per member, keyed by UserID hex.
	Distribute(key GroupKey, members map[string]*rsa.PublicKey) (GroupKeyMap, error)

	CreateGroup(name string, members map[string]*rsa.PublicKey) (*Group, error)
	Import(g *Group) error
	Get(id string) (*Group, error)
	// MemberKey unwraps the caller's own entry, consulting and filling the
	// session cache when one is supplied.
	MemberKey(sess *Session, g *Group, self UserID, priv *rsa.PrivateKey) (GroupKey, error)
}

// GroupMessageService encrypts and decrypts group messages under a shared
// group key.
type GroupMessageService interface {
	Encrypt(plaintext []byte, key GroupKey) (string, error)
	Decrypt(payload string, key GroupKey) ([]byte, error)
}

// VerificationService computes the out-of-band safety number for a key pair
// of identities.
type VerificationService interface {
	SafetyNumber(mine, theirs *rsa.PublicKey) (string, error)
}

// ContactService is the local directory of peers' imported public keys.
type ContactService interface {
	Add(id UserID, name string, publicDER []byte) (*Contact, error)
	Get(id UserID) (*Contact, error)
	List() ([]Contact, error)
	Remove(id UserID) error
}
