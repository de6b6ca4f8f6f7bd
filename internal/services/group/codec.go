package group

import (
	"fmt"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
)

// MessageCodec encrypts and decrypts group messages under the shared key.
// Payloads carry no wrapped key block: the key was distributed once at group
// creation, so the wire format is just nonce ‖ ciphertext+tag.
type MessageCodec struct {
	provider domain.CryptoProvider
}

// NewMessageCodec returns a group message codec over the given provider.
func NewMessageCodec(provider domain.CryptoProvider) *MessageCodec {
	return &MessageCodec{provider: provider}
}

// Encrypt seals plaintext under the group key with a fresh nonce and returns
// the base64 payload. The key is reused across messages; only the nonce is
// new per call.
func (c *MessageCodec) Encrypt(plaintext []byte, key domain.GroupKey) (string, error) {
	nonce, err := c.provider.RandomBytes(c.provider.NonceSize())
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	ct, err := c.provider.Seal(key.Slice(), nonce, plaintext)
	if err != nil {
		return "", fmt.Errorf("seal group message: %w", err)
	}

	buf := make([]byte, 0, len(nonce)+len(ct))
	buf = append(buf, nonce...)
	buf = append(buf, ct...)
	return crypto.B64(buf), nil
}

// Decrypt opens a payload. Undecodable or truncated input fails with
// ErrMalformedEnvelope; a tag mismatch from tamper or the wrong key fails
// with ErrAuthentication.
func (c *MessageCodec) Decrypt(payload string, key domain.GroupKey) ([]byte, error) {
	raw, err := crypto.FromB64(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEnvelope, err)
	}
	nonceLen := c.provider.NonceSize()
	if len(raw) < nonceLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", domain.ErrMalformedEnvelope, len(raw), nonceLen)
	}
	nonce := raw[:nonceLen]
	ct := raw[nonceLen:]

	pt, err := c.provider.Open(key.Slice(), nonce, ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}
	return pt, nil
}

// Compile-time assertion that MessageCodec implements
// domain.GroupMessageService.
var _ domain.GroupMessageService = (*MessageCodec)(nil)
