package group

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
)

// StoreKey is the key-value entry holding every known group record.
const StoreKey = "groups"

// Service creates group keys, fans them out per member and keeps the local
// record of groups the user belongs to.
type Service struct {
	provider domain.CryptoProvider
	store    domain.KeyValueStore
	log      *slog.Logger
}

// New returns a group service over the given provider and store.
func New(provider domain.CryptoProvider, store domain.KeyValueStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{provider: provider, store: store, log: log}
}

// NewGroupKey draws a fresh shared key. Unlike a message key it is reused
// for the lifetime of the group.
func (s *Service) NewGroupKey() (domain.GroupKey, error) {
	var key domain.GroupKey
	b, err := s.provider.GenerateSymmetricKey()
	if err != nil {
		return key, fmt.Errorf("generate group key: %w", err)
	}
	copy(key[:], b)
	crypto.Wipe(b)
	return key, nil
}

// WrapForMember encrypts the group key for one member. The output block has
// the provider's fixed wrapped-key length.
func (s *Service) WrapForMember(key domain.GroupKey, member *rsa.PublicKey) ([]byte, error) {
	wrapped, err := s.provider.WrapKey(member, key.Slice())
	if err != nil {
		return nil, fmt.Errorf("wrap group key: %w", err)
	}
	return wrapped, nil
}

// UnwrapOwn recovers the group key from the caller's own wrapped entry.
func (s *Service) UnwrapOwn(wrapped []byte, priv *rsa.PrivateKey) (domain.GroupKey, error) {
	var key domain.GroupKey
	b, err := s.provider.UnwrapKey(priv, wrapped)
	if err != nil {
		return key, fmt.Errorf("%w: %v", domain.ErrKeyUnwrap, err)
	}
	if len(b) != domain.GroupKeySize {
		crypto.Wipe(b)
		return key, fmt.Errorf("%w: unwrapped %d bytes, want %d", domain.ErrKeyUnwrap, len(b), domain.GroupKeySize)
	}
	copy(key[:], b)
	crypto.Wipe(b)
	return key, nil
}

// Distribute wraps key once per member. Entries are keyed by UserID hex and
// hold base64 wrapped-key blocks; members are wrapped concurrently since the
// operations are independent.
func (s *Service) Distribute(key domain.GroupKey, members map[string]*rsa.PublicKey) (domain.GroupKeyMap, error) {
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	wrapped := make([][]byte, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			w, err := s.WrapForMember(key, members[id])
			if err != nil {
				return fmt.Errorf("member %s: %w", id, err)
			}
			wrapped[i] = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(domain.GroupKeyMap, len(ids))
	for i, id := range ids {
		out[id] = crypto.B64(wrapped[i])
	}
	return out, nil
}

// CreateGroup generates a key, fans it out to every member and persists the
// resulting record. The plaintext key is not part of the record; the creator
// recovers it through their own wrapped entry like any other member.
func (s *Service) CreateGroup(name string, members map[string]*rsa.PublicKey) (*domain.Group, error) {
	key, err := s.NewGroupKey()
	if err != nil {
		return nil, err
	}
	keys, err := s.Distribute(key, members)
	if err != nil {
		return nil, err
	}
	g := &domain.Group{ID: uuid.NewString(), Name: name, Keys: keys}
	if err := s.put(g); err != nil {
		return nil, err
	}
	s.log.Debug("group created", "group_id", g.ID, "members", len(keys))
	return g, nil
}

// Import records a group created elsewhere, received out of band alongside
// the caller's wrapped key entry.
func (s *Service) Import(g *domain.Group) error {
	if g.ID == "" {
		return errors.New("import group: empty group id")
	}
	if err := s.put(g); err != nil {
		return err
	}
	s.log.Debug("group imported", "group_id", g.ID, "members", len(g.Keys))
	return nil
}

// Get returns a persisted group record, or ErrNotFound.
func (s *Service) Get(id string) (*domain.Group, error) {
	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	g, ok := all[id]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", id, domain.ErrNotFound)
	}
	return &g, nil
}

// MemberKey recovers the caller's group key. A session cache, when supplied,
// is consulted first and filled after a successful unwrap so repeated sends
// in one session pay a single private-key operation.
func (s *Service) MemberKey(sess *domain.Session, g *domain.Group, self domain.UserID, priv *rsa.PrivateKey) (domain.GroupKey, error) {
	if sess != nil {
		if key, ok := sess.CachedGroupKey(g.ID); ok {
			return key, nil
		}
	}
	entry, ok := g.Keys.For(self)
	if !ok {
		return domain.GroupKey{}, fmt.Errorf("group %s has no entry for %s: %w", g.ID, self, domain.ErrNotFound)
	}
	raw, err := crypto.FromB64(entry)
	if err != nil {
		return domain.GroupKey{}, fmt.Errorf("%w: entry for %s: %v", domain.ErrKeyUnwrap, self, err)
	}
	key, err := s.UnwrapOwn(raw, priv)
	if err != nil {
		return domain.GroupKey{}, err
	}
	if sess != nil {
		sess.CacheGroupKey(g.ID, key)
	}
	return key, nil
}

func (s *Service) put(g *domain.Group) error {
	all, err := s.loadAll()
	if err != nil {
		return err
	}
	all[g.ID] = *g
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode groups: %v", err)
	}
	return s.store.Set(StoreKey, raw)
}

func (s *Service) loadAll() (map[string]domain.Group, error) {
	raw, err := s.store.Get(StoreKey)
	if errors.Is(err, domain.ErrNotFound) {
		return make(map[string]domain.Group), nil
	}
	if err != nil {
		return nil, err
	}
	all := make(map[string]domain.Group)
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decode groups: %v", err)
	}
	return all, nil
}

// Compile-time assertion that Service implements domain.GroupService.
var _ domain.GroupService = (*Service)(nil)
