package envelope

import (
	"crypto/rsa"
	"fmt"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
)

// Service is the direct-message codec.
type Service struct {
	provider domain.CryptoProvider
}

// New returns an envelope codec over the given provider.
func New(provider domain.CryptoProvider) *Service {
	return &Service{provider: provider}
}

// Encrypt seals plaintext for one recipient. A fresh symmetric key and a
// fresh nonce are generated per call and never reused.
func (s *Service) Encrypt(plaintext []byte, recipient *rsa.PublicKey) (string, error) {
	key, err := s.provider.GenerateSymmetricKey()
	if err != nil {
		return "", fmt.Errorf("generate message key: %w", err)
	}
	defer crypto.Wipe(key)

	nonce, err := s.provider.RandomBytes(s.provider.NonceSize())
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	ct, err := s.provider.Seal(key, nonce, plaintext)
	if err != nil {
		return "", fmt.Errorf("seal message: %w", err)
	}
	wrapped, err := s.provider.WrapKey(recipient, key)
	if err != nil {
		return "", fmt.Errorf("wrap message key: %w", err)
	}

	buf := make([]byte, 0, len(wrapped)+len(nonce)+len(ct))
	buf = append(buf, wrapped...)
	buf = append(buf, nonce...)
	buf = append(buf, ct...)
	return crypto.B64(buf), nil
}

// Decrypt opens an envelope with the recipient's private key. Failures are
// typed: undecodable or truncated input is ErrMalformedEnvelope, a wrapped
// key that will not open is ErrKeyUnwrap, and a tag mismatch is
// ErrAuthentication. No partial plaintext is ever returned.
func (s *Service) Decrypt(envelope string, priv *rsa.PrivateKey) ([]byte, error) {
	raw, err := crypto.FromB64(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEnvelope, err)
	}

	wrappedLen := s.provider.WrappedKeySize()
	header := wrappedLen + s.provider.NonceSize()
	if len(raw) < header {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", domain.ErrMalformedEnvelope, len(raw), header)
	}
	wrapped := raw[:wrappedLen]
	nonce := raw[wrappedLen:header]
	ct := raw[header:]

	key, err := s.provider.UnwrapKey(priv, wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeyUnwrap, err)
	}
	defer crypto.Wipe(key)
	if len(key) != crypto.SymmetricKeySize {
		return nil, fmt.Errorf("%w: unwrapped %d bytes, want %d", domain.ErrKeyUnwrap, len(key), crypto.SymmetricKeySize)
	}

	pt, err := s.provider.Open(key, nonce, ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}
	return pt, nil
}

// EncryptDual seals the same plaintext twice: once for the recipient and
// once for the sender's own history. The halves share nothing but the
// plaintext.
func (s *Service) EncryptDual(plaintext []byte, recipient, sender *rsa.PublicKey) (*domain.DirectMessage, error) {
	forRecipient, err := s.Encrypt(plaintext, recipient)
	if err != nil {
		return nil, err
	}
	forSender, err := s.Encrypt(plaintext, sender)
	if err != nil {
		return nil, err
	}
	return &domain.DirectMessage{ForRecipient: forRecipient, ForSender: forSender}, nil
}

// Compile-time assertion that Service implements domain.EnvelopeService.
var _ domain.EnvelopeService = (*Service)(nil)
