package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
	"io"

	"sealchat/internal/domain"
)

// Suite is the stdlib-backed CryptoProvider. All methods are safe for
// concurrent use; the zero value is not usable, construct with NewSuite.
type Suite struct {
	params Params
	rand   io.Reader
}

// NewSuite builds a suite drawing randomness from crypto/rand.
func NewSuite(p Params) (*Suite, error) {
	return NewSuiteWithRandom(p, rand.Reader)
}

// NewSuiteWithRandom builds a suite with an explicit random source. Tests
// pass a ShakeReader for a reproducible stream; nil falls back to
// crypto/rand. The reader must be safe for concurrent use if the suite is
// shared across goroutines; a ShakeReader is not.
func NewSuiteWithRandom(p Params, r io.Reader) (*Suite, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("crypto params: %w", err)
	}
	if r == nil {
		r = rand.Reader
	}
	return &Suite{params: p, rand: r}, nil
}

func (s *Suite) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(s.rand, b); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return b, nil
}

func (s *Suite) GenerateKeyPair() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(s.rand, s.params.ModulusBits)
}

func (s *Suite) GenerateSymmetricKey() ([]byte, error) {
	return s.RandomBytes(s.params.SymmetricKeyBits / 8)
}

// WrapKey encrypts a symmetric key under pub with OAEP. The result is always
// one modulus-length block.
func (s *Suite) WrapKey(pub *rsa.PublicKey, key []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), s.rand, pub, key, nil)
}

func (s *Suite) UnwrapKey(priv *rsa.PrivateKey, wrapped []byte) ([]byte, error) {
	return rsa.DecryptOAEP(sha256.New(), s.rand, priv, wrapped, nil)
}

// Seal encrypts plaintext with AES-GCM and returns ciphertext‖tag.
func (s *Suite) Seal(key, nonce, plaintext []byte) ([]byte, error) {
	gcm, err := s.aead(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("seal: nonce is %d bytes, want %d", len(nonce), gcm.NonceSize())
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// Open decrypts ciphertext‖tag and fails on any bit of tamper.
func (s *Suite) Open(key, nonce, ciphertext []byte) ([]byte, error) {
	gcm, err := s.aead(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("open: nonce is %d bytes, want %d", len(nonce), gcm.NonceSize())
	}
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (s *Suite) aead(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (s *Suite) Hash(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

func (s *Suite) ExportPublicKey(pub *rsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pub)
}

func (s *Suite) ImportPublicKey(der []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, err
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return pub, nil
}

func (s *Suite) ExportPrivateKey(priv *rsa.PrivateKey) ([]byte, error) {
	return x509.MarshalPKCS8PrivateKey(priv)
}

func (s *Suite) ImportPrivateKey(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("not an RSA private key")
	}
	return priv, nil
}

func (s *Suite) WrappedKeySize() int { return s.params.ModulusBits / 8 }

func (s *Suite) NonceSize() int { return s.params.NonceBits / 8 }

// Compile-time assertion that Suite implements domain.CryptoProvider.
var _ domain.CryptoProvider = (*Suite)(nil)
