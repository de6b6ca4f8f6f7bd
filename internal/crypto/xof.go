package crypto

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// ShakeReader returns the SHAKE256 stream for seed. The same seed always
// yields the same stream, which makes suites built over it reproducible in
// tests. Never use it as a production randomness source.
func ShakeReader(seed []byte) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write(seed)
	return h
}
