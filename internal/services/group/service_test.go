package group_test

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"testing"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
	"sealchat/internal/services/group"
	"sealchat/internal/store"
)

// makeService builds a group service over a fresh in-memory store.
func makeService(t *testing.T) (*group.Service, *crypto.Suite) {
	t.Helper()
	suite, err := crypto.NewSuite(crypto.DefaultParams())
	if err != nil {
		t.Fatalf("NewSuite: %v", err)
	}
	return group.New(suite, store.NewMemoryStore(), nil), suite
}

// makeMembers generates n member keypairs keyed by synthetic UserID hex.
func makeMembers(t *testing.T, suite *crypto.Suite, n int) (map[string]*rsa.PublicKey, map[string]*rsa.PrivateKey) {
	t.Helper()
	pubs := make(map[string]*rsa.PublicKey, n)
	privs := make(map[string]*rsa.PrivateKey, n)
	for i := 0; i < n; i++ {
		priv, err := suite.GenerateKeyPair()
		if err != nil {
			t.Fatalf("GenerateKeyPair: %v", err)
		}
		id := domain.UserID{byte(i + 1)}.Hex()
		pubs[id] = &priv.PublicKey
		privs[id] = priv
	}
	return pubs, privs
}

func TestNewGroupKey_Distinct(t *testing.T) {
	svc, _ := makeService(t)
	a, err := svc.NewGroupKey()
	if err != nil {
		t.Fatalf("NewGroupKey: %v", err)
	}
	b, err := svc.NewGroupKey()
	if err != nil {
		t.Fatalf("NewGroupKey: %v", err)
	}
	if a == b {
		t.Fatal("two group keys must differ")
	}
}

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	svc, suite := makeService(t)
	priv, err := suite.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	key, err := svc.NewGroupKey()
	if err != nil {
		t.Fatalf("NewGroupKey: %v", err)
	}

	wrapped, err := svc.WrapForMember(key, &priv.PublicKey)
	if err != nil {
		t.Fatalf("WrapForMember: %v", err)
	}
	if len(wrapped) != suite.WrappedKeySize() {
		t.Fatalf("wrapped block: got %d bytes, want %d", len(wrapped), suite.WrappedKeySize())
	}

	got, err := svc.UnwrapOwn(wrapped, priv)
	if err != nil {
		t.Fatalf("UnwrapOwn: %v", err)
	}
	if got != key {
		t.Fatal("unwrapped key differs")
	}
}

func TestUnwrapOwn_WrongKey(t *testing.T) {
	svc, suite := makeService(t)
	a, err := suite.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	b, err := suite.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	key, err := svc.NewGroupKey()
	if err != nil {
		t.Fatalf("NewGroupKey: %v", err)
	}
	wrapped, err := svc.WrapForMember(key, &a.PublicKey)
	if err != nil {
		t.Fatalf("WrapForMember: %v", err)
	}
	if _, err := svc.UnwrapOwn(wrapped, b); !errors.Is(err, domain.ErrKeyUnwrap) {
		t.Fatalf("UnwrapOwn: got %v, want ErrKeyUnwrap", err)
	}
}

func TestUnwrapOwn_CorruptBlock(t *testing.T) {
	svc, suite := makeService(t)
	priv, err := suite.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	key, err := svc.NewGroupKey()
	if err != nil {
		t.Fatalf("NewGroupKey: %v", err)
	}
	wrapped, err := svc.WrapForMember(key, &priv.PublicKey)
	if err != nil {
		t.Fatalf("WrapForMember: %v", err)
	}
	wrapped[0] ^= 0x01
	if _, err := svc.UnwrapOwn(wrapped, priv); !errors.Is(err, domain.ErrKeyUnwrap) {
		t.Fatalf("UnwrapOwn: got %v, want ErrKeyUnwrap", err)
	}
}

// Every member of the fan-out must recover the identical key from their own
// entry.
func TestDistribute_FanOut(t *testing.T) {
	svc, suite := makeService(t)
	pubs, privs := makeMembers(t, suite, 4)

	key, err := svc.NewGroupKey()
	if err != nil {
		t.Fatalf("NewGroupKey: %v", err)
	}
	m, err := svc.Distribute(key, pubs)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if len(m) != len(pubs) {
		t.Fatalf("map size: got %d, want %d", len(m), len(pubs))
	}

	for id, priv := range privs {
		entry, ok := m[id]
		if !ok {
			t.Fatalf("no entry for member %s", id)
		}
		raw, err := crypto.FromB64(entry)
		if err != nil {
			t.Fatalf("FromB64: %v", err)
		}
		got, err := svc.UnwrapOwn(raw, priv)
		if err != nil {
			t.Fatalf("UnwrapOwn for %s: %v", id, err)
		}
		if got != key {
			t.Fatalf("member %s recovered a different key", id)
		}
	}

	// A member must not be able to open another member's entry.
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	raw, err := crypto.FromB64(m[ids[0]])
	if err != nil {
		t.Fatalf("FromB64: %v", err)
	}
	for _, id := range ids[1:] {
		if _, err := svc.UnwrapOwn(raw, privs[id]); !errors.Is(err, domain.ErrKeyUnwrap) {
			t.Fatalf("cross unwrap: got %v, want ErrKeyUnwrap", err)
		}
	}
}

func TestCreateGroup_PersistsRecord(t *testing.T) {
	svc, suite := makeService(t)
	pubs, _ := makeMembers(t, suite, 2)

	g, err := svc.CreateGroup("ops", pubs)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if g.ID == "" {
		t.Fatal("group id must be set")
	}
	if len(g.Keys) != len(pubs) {
		t.Fatalf("keys: got %d entries, want %d", len(g.Keys), len(pubs))
	}

	got, err := svc.Get(g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "ops" || len(got.Keys) != len(g.Keys) {
		t.Fatalf("Get: got %+v", got)
	}
}

func TestGet_Missing(t *testing.T) {
	svc, _ := makeService(t)
	if _, err := svc.Get("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get: got %v, want ErrNotFound", err)
	}
}

func TestImport_ThenGet(t *testing.T) {
	svc, _ := makeService(t)
	in := &domain.Group{ID: "g-1", Name: "imported", Keys: domain.GroupKeyMap{"aa": "AAAA"}}
	if err := svc.Import(in); err != nil {
		t.Fatalf("Import: %v", err)
	}
	got, err := svc.Get("g-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "imported" {
		t.Fatalf("Get: got %+v", got)
	}

	if err := svc.Import(&domain.Group{Name: "no id"}); err == nil {
		t.Fatal("Import without id: want error")
	}
}

func TestMemberKey_UnwrapsAndCaches(t *testing.T) {
	svc, suite := makeService(t)
	priv, err := suite.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	self := domain.UserID{0x7f}
	members := map[string]*rsa.PublicKey{self.Hex(): &priv.PublicKey}

	g, err := svc.CreateGroup("cache me", members)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	sess := domain.NewSession()
	key, err := svc.MemberKey(sess, g, self, priv)
	if err != nil {
		t.Fatalf("MemberKey: %v", err)
	}
	cached, ok := sess.CachedGroupKey(g.ID)
	if !ok || cached != key {
		t.Fatal("MemberKey must fill the session cache")
	}

	// A second call is served from the cache: the private key is not needed.
	again, err := svc.MemberKey(sess, g, self, nil)
	if err != nil {
		t.Fatalf("MemberKey from cache: %v", err)
	}
	if again != key {
		t.Fatal("cached key differs")
	}

	// Without a session it still unwraps.
	direct, err := svc.MemberKey(nil, g, self, priv)
	if err != nil {
		t.Fatalf("MemberKey without session: %v", err)
	}
	if direct != key {
		t.Fatal("direct key differs")
	}
}

func TestMemberKey_NotAMember(t *testing.T) {
	svc, suite := makeService(t)
	priv, err := suite.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	g := &domain.Group{ID: "g-2", Keys: domain.GroupKeyMap{}}
	if _, err := svc.MemberKey(nil, g, domain.UserID{1}, priv); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("MemberKey: got %v, want ErrNotFound", err)
	}
}

// Group records accumulate in one store entry; creating several must not
// clobber earlier ones.
func TestCreateGroup_SeveralCoexist(t *testing.T) {
	svc, suite := makeService(t)
	pubs, _ := makeMembers(t, suite, 1)

	var ids []string
	for i := 0; i < 3; i++ {
		g, err := svc.CreateGroup(fmt.Sprintf("group-%d", i), pubs)
		if err != nil {
			t.Fatalf("CreateGroup %d: %v", i, err)
		}
		ids = append(ids, g.ID)
	}
	for _, id := range ids {
		if _, err := svc.Get(id); err != nil {
			t.Fatalf("Get %s: %v", id, err)
		}
	}
}
