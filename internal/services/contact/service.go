package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"sealchat/internal/domain"
)

// StoreKey is the key-value entry holding the whole keyring.
const StoreKey = "contacts"

// Service is the local directory of peers' public keys. Keys arrive out of
// band (a file, a QR code, a trusted channel); the directory only records
// and validates them.
type Service struct {
	provider domain.CryptoProvider
	store    domain.KeyValueStore
	log      *slog.Logger
}

// New returns a contact service over the given provider and store.
func New(provider domain.CryptoProvider, store domain.KeyValueStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{provider: provider, store: store, log: log}
}

// Add validates the exported key and upserts the contact. Garbage key
// material fails with ErrKeyFormat before anything is written.
func (s *Service) Add(id domain.UserID, name string, publicDER []byte) (*domain.Contact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("add contact: empty name")
	}
	if _, err := s.provider.ImportPublicKey(publicDER); err != nil {
		return nil, fmt.Errorf("%w: contact key: %v", domain.ErrKeyFormat, err)
	}

	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	c := domain.Contact{UserID: id.Hex(), Name: name, PublicKey: publicDER}
	all[c.UserID] = c
	if err := s.saveAll(all); err != nil {
		return nil, err
	}
	s.log.Debug("contact added", "user_id", c.UserID)
	return &c, nil
}

// Get returns one contact, or ErrNotFound.
func (s *Service) Get(id domain.UserID) (*domain.Contact, error) {
	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	c, ok := all[id.Hex()]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

// List returns every contact ordered by display name, then identifier.
func (s *Service) List() ([]domain.Contact, error) {
	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contact, 0, len(all))
	for _, c := range all {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

// Remove deletes one contact. Removing an unknown contact is not an error.
func (s *Service) Remove(id domain.UserID) error {
	all, err := s.loadAll()
	if err != nil {
		return err
	}
	if _, ok := all[id.Hex()]; !ok {
		return nil
	}
	delete(all, id.Hex())
	if err := s.saveAll(all); err != nil {
		return err
	}
	s.log.Debug("contact removed", "user_id", id.Hex())
	return nil
}

func (s *Service) saveAll(all map[string]domain.Contact) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode contacts: %v", err)
	}
	return s.store.Set(StoreKey, raw)
}

func (s *Service) loadAll() (map[string]domain.Contact, error) {
	raw, err := s.store.Get(StoreKey)
	if errors.Is(err, domain.ErrNotFound) {
		return make(map[string]domain.Contact), nil
	}
	if err != nil {
		return nil, err
	}
	all := make(map[string]domain.Contact)
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decode contacts: %v", err)
	}
	return all, nil
}

// Compile-time assertion that Service implements domain.ContactService.
var _ domain.ContactService = (*Service)(nil)
