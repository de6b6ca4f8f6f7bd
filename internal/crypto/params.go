package crypto

import "github.com/jellydator/validation"

// Params enumerates the algorithm configuration the suite accepts. Only the
// values below are valid; anything else fails NewSuite. Fixing the set here
// keeps the wire layout stable: the wrapped-key block is ModulusBits/8 bytes
// and every envelope split depends on it.
type Params struct {
	ModulusBits      int
	Hash             string
	Padding          string
	SymmetricKeyBits int
	NonceBits        int
}

// DefaultParams is the protocol's only deployed configuration.
func DefaultParams() Params {
	return Params{
		ModulusBits:      2048,
		Hash:             "SHA-256",
		Padding:          "OAEP",
		SymmetricKeyBits: 256,
		NonceBits:        96,
	}
}

// Validate rejects any field outside the enumerated set.
func (p Params) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ModulusBits, validation.Required, validation.In(2048)),
		validation.Field(&p.Hash, validation.Required, validation.In("SHA-256")),
		validation.Field(&p.Padding, validation.Required, validation.In("OAEP")),
		validation.Field(&p.SymmetricKeyBits, validation.Required, validation.In(256)),
		validation.Field(&p.NonceBits, validation.Required, validation.In(96)),
	)
}
