package domain

import (
	"encoding/hex"
	"fmt"
)

const (
	// SecretSize is the byte length of a recovery secret (64 hex chars).
	SecretSize = 32
	// UserIDSize is the byte length of a user identifier (32 hex chars).
	UserIDSize = 16
	// GroupKeySize is the byte length of a shared group key.
	GroupKeySize = 32
)

// RecoverySecret is the root of a user's identity. It is generated once at
// signup, shown to the user a single time and never transmitted.
type RecoverySecret [SecretSize]byte

func (s RecoverySecret) Slice() []byte { return s[:] }

// Hex returns the canonical lowercase 64-character encoding.
func (s RecoverySecret) Hex() string { return hex.EncodeToString(s[:]) }

// ParseRecoverySecret decodes the 64-character hex form.
func ParseRecoverySecret(text string) (RecoverySecret, error) {
	var out RecoverySecret
	if len(text) != SecretSize*2 {
		return out, fmt.Errorf("recovery secret: want %d hex chars, got %d", SecretSize*2, len(text))
	}
	b, err := hex.DecodeString(text)
	if err != nil {
		return out, fmt.Errorf("recovery secret: %v", err)
	}
	copy(out[:], b)
	return out, nil
}

// UserID is the public, routable identifier deterministically derived from a
// RecoverySecret. It is stable across recovery.
type UserID [UserIDSize]byte

func (u UserID) Slice() []byte { return u[:] }

// Hex returns the canonical lowercase 32-character encoding.
func (u UserID) Hex() string { return hex.EncodeToString(u[:]) }

func (u UserID) String() string { return u.Hex() }

// ParseUserID decodes the 32-character hex form.
func ParseUserID(text string) (UserID, error) {
	var out UserID
	if len(text) != UserIDSize*2 {
		return out, fmt.Errorf("user id: want %d hex chars, got %d", UserIDSize*2, len(text))
	}
	b, err := hex.DecodeString(text)
	if err != nil {
		return out, fmt.Errorf("user id: %v", err)
	}
	copy(out[:], b)
	return out, nil
}

// GroupKey is the symmetric key shared by all members of one group. It is
// created once per group and never rotated or sent in the clear.
type GroupKey [GroupKeySize]byte

func (k GroupKey) Slice() []byte { return k[:] }

// GroupKeyMap holds one wrapped copy of a group key per member, keyed by the
// member's UserID hex. Values are base64 wrapped-key blocks. Whoever carries
// the map never sees the key itself.
type GroupKeyMap map[string]string

// For returns the wrapped entry for one member.
func (m GroupKeyMap) For(id UserID) (string, bool) {
	v, ok := m[id.Hex()]
	return v, ok
}

// Group is a persisted group record: identity of the group plus the wrapped
// key fan-out produced at creation.
type Group struct {
	ID   string      `json:"group_id"`
	Name string      `json:"name"`
	Keys GroupKeyMap `json:"encrypted_keys"`
}

// Contact is a peer whose public key was imported out of band.
type Contact struct {
	UserID    string `json:"user_id"`
	Name      string `json:"display_name"`
	PublicKey []byte `json:"public_key"` // PKIX/SPKI DER
}

// DirectMessage carries the two envelopes of one direct message: the copy
// only the recipient can open and the copy the sender keeps for their own
// history. Each half has its own message key and nonce.
type DirectMessage struct {
	ForRecipient string `json:"encrypted_content"`
	ForSender    string `json:"encrypted_for_sender"`
}
