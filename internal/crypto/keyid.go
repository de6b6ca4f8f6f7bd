package crypto

import (
	"github.com/mr-tron/base58/base58"
	"golang.org/x/crypto/blake2b"
)

// keyIDPrefix versions the fingerprint format.
const keyIDPrefix = "sc1"

// KeyID returns the short display fingerprint of one exported public key:
// base58 of its BLAKE2b-256 digest. Unlike the safety number, which covers a
// pair of keys, this identifies a single key in listings.
func KeyID(publicDER []byte) string {
	sum := blake2b.Sum256(publicDER)
	return keyIDPrefix + base58.Encode(sum[:])
}
