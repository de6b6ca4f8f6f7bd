package identity

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
)

const (
	// identityKey is the KV key holding the persisted identity triple.
	identityKey = "identity"

	// userIDTag domain-separates the identifier digest. Changing it would
	// change every derived user id, so it is fixed for the protocol's life.
	userIDTag = "sealchat/user-id/v1"
)

// record is the persisted identity triple.
type record struct {
	UserID     string `json:"user_id"`
	PublicKey  []byte `json:"public_key"`
	PrivateKey []byte `json:"private_key"`
}

// Service derives, persists and recovers the local identity.
type Service struct {
	provider domain.CryptoProvider
	store    domain.KeyValueStore
	log      *slog.Logger
}

// New returns an identity service over the given provider and store.
func New(provider domain.CryptoProvider, store domain.KeyValueStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{provider: provider, store: store, log: log}
}

// GenerateSecret draws a fresh 32-byte recovery secret.
func (s *Service) GenerateSecret() (domain.RecoverySecret, error) {
	var secret domain.RecoverySecret
	b, err := s.provider.RandomBytes(domain.SecretSize)
	if err != nil {
		return secret, fmt.Errorf("generate recovery secret: %w", err)
	}
	copy(secret[:], b)
	crypto.Wipe(b)
	return secret, nil
}

// DeriveUserID digests the secret's canonical hex form with the protocol
// domain tag and keeps the first 16 bytes. The same secret always maps to
// the same identifier, which is what makes recovery routable.
func (s *Service) DeriveUserID(secret domain.RecoverySecret) domain.UserID {
	sum := s.provider.Hash(append([]byte(secret.Hex()), userIDTag...))
	var id domain.UserID
	copy(id[:], sum[:domain.UserIDSize])
	return id
}

// NewKeyPair generates a fresh random keypair. It is intentionally not
// derived from the secret; recovery reproduces the keypair from the escrow
// blob instead.
func (s *Service) NewKeyPair() (*rsa.PrivateKey, error) {
	priv, err := s.provider.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	return priv, nil
}

func (s *Service) ExportPublic(pub *rsa.PublicKey) ([]byte, error) {
	return s.provider.ExportPublicKey(pub)
}

func (s *Service) ExportPrivate(priv *rsa.PrivateKey) ([]byte, error) {
	return s.provider.ExportPrivateKey(priv)
}

func (s *Service) ImportPublic(der []byte) (*rsa.PublicKey, error) {
	pub, err := s.provider.ImportPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", domain.ErrKeyFormat, err)
	}
	return pub, nil
}

func (s *Service) ImportPrivate(der []byte) (*rsa.PrivateKey, error) {
	priv, err := s.provider.ImportPrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: private key: %v", domain.ErrKeyFormat, err)
	}
	return priv, nil
}

// Enroll performs signup: fresh secret, derived identifier, fresh keypair,
// escrow blob, persisted identity. The caller shows the secret once and
// keeps the blob somewhere a recovery can reach it.
func (s *Service) Enroll() (*domain.Identity, domain.RecoverySecret, []byte, error) {
	secret, err := s.GenerateSecret()
	if err != nil {
		return nil, domain.RecoverySecret{}, nil, err
	}
	priv, err := s.NewKeyPair()
	if err != nil {
		return nil, domain.RecoverySecret{}, nil, err
	}

	privDER, err := s.ExportPrivate(priv)
	if err != nil {
		return nil, domain.RecoverySecret{}, nil, err
	}
	escrow, err := crypto.SealEscrow(privDER, secret.Slice())
	crypto.Wipe(privDER)
	if err != nil {
		return nil, domain.RecoverySecret{}, nil, fmt.Errorf("seal escrow: %w", err)
	}

	id := &domain.Identity{
		UserID:  s.DeriveUserID(secret),
		Public:  &priv.PublicKey,
		Private: priv,
	}
	if err := s.Store(id); err != nil {
		return nil, domain.RecoverySecret{}, nil, err
	}
	s.log.Debug("identity enrolled", "user_id", id.UserID.Hex())
	return id, secret, escrow, nil
}

// Recover rebuilds the identity from the secret and its escrow blob and
// persists it. The derived identifier matches the one from signup because
// both come from the same secret.
func (s *Service) Recover(secret domain.RecoverySecret, escrow []byte) (*domain.Identity, error) {
	privDER, err := crypto.OpenEscrow(escrow, secret.Slice())
	if err != nil {
		return nil, err
	}
	priv, err := s.ImportPrivate(privDER)
	crypto.Wipe(privDER)
	if err != nil {
		return nil, err
	}

	id := &domain.Identity{
		UserID:  s.DeriveUserID(secret),
		Public:  &priv.PublicKey,
		Private: priv,
	}
	if err := s.Store(id); err != nil {
		return nil, err
	}
	s.log.Debug("identity recovered", "user_id", id.UserID.Hex())
	return id, nil
}

// Store persists the identity triple.
func (s *Service) Store(id *domain.Identity) error {
	pubDER, err := s.ExportPublic(id.Public)
	if err != nil {
		return err
	}
	privDER, err := s.ExportPrivate(id.Private)
	if err != nil {
		return err
	}
	b, err := json.Marshal(record{
		UserID:     id.UserID.Hex(),
		PublicKey:  pubDER,
		PrivateKey: privDER,
	})
	if err != nil {
		return err
	}
	if err := s.store.Set(identityKey, b); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}
	return nil
}

// Load fetches the persisted identity. Nothing stored means ErrNoSession; a
// corrupt record fails with ErrKeyFormat, which callers also treat as "no
// valid session" rather than a crash.
func (s *Service) Load() (*domain.Identity, error) {
	b, err := s.store.Get(identityKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}

	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("%w: identity record: %v", domain.ErrKeyFormat, err)
	}
	uid, err := domain.ParseUserID(rec.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeyFormat, err)
	}
	pub, err := s.ImportPublic(rec.PublicKey)
	if err != nil {
		return nil, err
	}
	priv, err := s.ImportPrivate(rec.PrivateKey)
	if err != nil {
		return nil, err
	}
	if !priv.PublicKey.Equal(pub) {
		return nil, fmt.Errorf("%w: stored halves do not match", domain.ErrKeyFormat)
	}

	return &domain.Identity{UserID: uid, Public: pub, Private: priv}, nil
}

// Clear erases the persisted identity.
func (s *Service) Clear() error {
	if err := s.store.Remove(identityKey); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	s.log.Debug("identity cleared")
	return nil
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
