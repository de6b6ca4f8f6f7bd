package domain

import "crypto/rsa"

// Identity holds the local user's keys for the lifetime of a session. The
// private half never leaves the owning device except inside an escrow blob
// sealed under the recovery secret.
type Identity struct {
	UserID  UserID
	Public  *rsa.PublicKey
	Private *rsa.PrivateKey
}
