package crypto

import "runtime"

// Wipe zeroes the buffer once its key material has been copied elsewhere.
// Best-effort: the write must not be elided by the compiler.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
