package crypto

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"sealchat/internal/domain"
)

// The current supported version of the escrow blob format.
const escrowVersion = 1

// argon2id parameters used when sealing. Opens honor the parameters recorded
// in the blob so old blobs stay readable if these move.
const (
	escrowKDF      = "argon2id"
	escrowTime     = 2
	escrowMemoryKB = 64 * 1024
	escrowThreads  = 1

	// escrowMemoryCapKB bounds the KDF memory a blob may demand of us.
	escrowMemoryCapKB = 1 << 20
)

// escrowBlob is the JSON structure carrying the sealed private key together
// with its KDF parameters. It is safe to hand to an untrusted server: only
// the recovery secret opens it.
type escrowBlob struct {
	V        int    `json:"v"`
	KDF      string `json:"kdf"`
	Time     uint32 `json:"kdf_time"`
	MemoryKB uint32 `json:"kdf_memory_kb"`
	Threads  uint8  `json:"kdf_threads"`
	Salt     []byte `json:"salt"`
	Nonce    []byte `json:"nonce"`
	Cipher   []byte `json:"cipher"`
}

// SealEscrow encrypts the exported private key under a key stretched from
// the recovery secret and returns the JSON blob.
func SealEscrow(privateDER, secret []byte) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key := argon2.IDKey(secret, salt, escrowTime, escrowMemoryKB, escrowThreads, chacha20poly1305.KeySize)
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, privateDER, nil)

	return json.Marshal(escrowBlob{
		V:        escrowVersion,
		KDF:      escrowKDF,
		Time:     escrowTime,
		MemoryKB: escrowMemoryKB,
		Threads:  escrowThreads,
		Salt:     salt,
		Nonce:    nonce,
		Cipher:   ct,
	})
}

// OpenEscrow recovers the private key DER from a blob. A structurally bad
// blob fails with ErrKeyFormat; a wrong secret or tampered ciphertext fails
// with ErrAuthentication.
func OpenEscrow(blob, secret []byte) ([]byte, error) {
	var b escrowBlob
	if err := json.Unmarshal(blob, &b); err != nil {
		return nil, fmt.Errorf("%w: escrow blob: %v", domain.ErrKeyFormat, err)
	}
	if b.V != escrowVersion {
		return nil, fmt.Errorf("%w: unsupported escrow version %d", domain.ErrKeyFormat, b.V)
	}
	if b.KDF != escrowKDF {
		return nil, fmt.Errorf("%w: unknown escrow kdf %q", domain.ErrKeyFormat, b.KDF)
	}
	if b.Time == 0 || b.Threads == 0 || b.MemoryKB == 0 || b.MemoryKB > escrowMemoryCapKB {
		return nil, fmt.Errorf("%w: escrow kdf parameters out of range", domain.ErrKeyFormat)
	}
	if len(b.Salt) != SaltSize || len(b.Nonce) != chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("%w: escrow salt or nonce length", domain.ErrKeyFormat)
	}

	key := argon2.IDKey(secret, b.Salt, b.Time, b.MemoryKB, b.Threads, chacha20poly1305.KeySize)
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, b.Nonce, b.Cipher, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: escrow blob would not open", domain.ErrAuthentication)
	}
	return pt, nil
}
