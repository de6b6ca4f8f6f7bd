package identity

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"

	"sealchat/internal/domain"
)

// Mnemonic renders the recovery secret as a 24-word BIP-39 phrase for
// writing down. The phrase encodes the secret exactly.
func Mnemonic(secret domain.RecoverySecret) (string, error) {
	words, err := bip39.NewMnemonic(secret.Slice())
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}
	return words, nil
}

// SecretFromMnemonic decodes a phrase produced by Mnemonic.
func SecretFromMnemonic(words string) (domain.RecoverySecret, error) {
	var secret domain.RecoverySecret
	entropy, err := bip39.EntropyFromMnemonic(words)
	if err != nil {
		return secret, fmt.Errorf("invalid mnemonic: %w", err)
	}
	if len(entropy) != domain.SecretSize {
		return secret, fmt.Errorf("mnemonic encodes %d bytes, want %d", len(entropy), domain.SecretSize)
	}
	copy(secret[:], entropy)
	return secret, nil
}
