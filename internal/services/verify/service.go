package verify

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
)

// Safety number shape: 30 digest bytes rendered as 60 decimal digits, in 12
// groups of 5, laid out 4 groups per line.
const (
	digestBytes   = 30
	groupDigits   = 5
	groupsPerLine = 4
	numLines      = 3
)

// Service computes safety numbers for manual out-of-band verification.
type Service struct {
	provider domain.CryptoProvider
}

// New returns a verification service over the given provider.
func New(provider domain.CryptoProvider) *Service {
	return &Service{provider: provider}
}

// SafetyNumber derives the shared fingerprint of two public keys. The keys
// are serialized to canonical text and sorted before hashing, so both
// parties compute the identical value no matter who initiates. Any change to
// either key changes the result.
func (s *Service) SafetyNumber(mine, theirs *rsa.PublicKey) (string, error) {
	if mine == nil || theirs == nil {
		return "", errors.New("safety number: nil public key")
	}
	a, err := s.canonical(mine)
	if err != nil {
		return "", err
	}
	b, err := s.canonical(theirs)
	if err != nil {
		return "", err
	}
	if b < a {
		a, b = b, a
	}
	sum := s.provider.Hash([]byte(a + "|" + b))

	var digits strings.Builder
	digits.Grow(digestBytes * 2)
	for _, v := range sum[:digestBytes] {
		fmt.Fprintf(&digits, "%02d", v%100)
	}
	return chunk(digits.String()), nil
}

// canonical is the text form a key is hashed under: base64 of the SPKI DER.
func (s *Service) canonical(pub *rsa.PublicKey) (string, error) {
	der, err := s.provider.ExportPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("safety number: export key: %w", err)
	}
	return crypto.B64(der), nil
}

// chunk lays the 60-digit string out as 3 lines of 4 five-digit groups.
func chunk(digits string) string {
	var out strings.Builder
	out.Grow(len(digits) + numLines*groupsPerLine)
	for line := 0; line < numLines; line++ {
		if line > 0 {
			out.WriteByte('\n')
		}
		for g := 0; g < groupsPerLine; g++ {
			if g > 0 {
				out.WriteByte(' ')
			}
			start := (line*groupsPerLine + g) * groupDigits
			out.WriteString(digits[start : start+groupDigits])
		}
	}
	return out.String()
}

// Compile-time assertion that Service implements domain.VerificationService.
var _ domain.VerificationService = (*Service)(nil)
