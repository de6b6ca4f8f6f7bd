package domain_test

import (
	"errors"
	"sync"
	"testing"

	"sealchat/internal/domain"
)

func TestSession_IdentityLifecycle(t *testing.T) {
	s := domain.NewSession()

	if _, err := s.Identity(); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("empty session: got %v, want ErrNoSession", err)
	}

	id := &domain.Identity{UserID: domain.UserID{1}}
	s.Attach(id)
	got, err := s.Identity()
	if err != nil {
		t.Fatalf("Identity: %v", err)
	}
	if got != id {
		t.Fatal("Identity: wrong identity returned")
	}

	s.Reset()
	if _, err := s.Identity(); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("after Reset: got %v, want ErrNoSession", err)
	}
}

func TestSession_GroupKeyCache(t *testing.T) {
	s := domain.NewSession()
	key := domain.GroupKey{0xaa}

	if _, ok := s.CachedGroupKey("g1"); ok {
		t.Fatal("cache should start empty")
	}
	s.CacheGroupKey("g1", key)
	got, ok := s.CachedGroupKey("g1")
	if !ok || got != key {
		t.Fatalf("CachedGroupKey: got %v, %v", got, ok)
	}

	s.Reset()
	if _, ok := s.CachedGroupKey("g1"); ok {
		t.Fatal("Reset must drop cached keys")
	}
}

func TestSession_ConcurrentCacheAccess(t *testing.T) {
	s := domain.NewSession()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n byte) {
			defer wg.Done()
			s.CacheGroupKey(string(rune('a'+n)), domain.GroupKey{n})
			s.CachedGroupKey(string(rune('a' + n)))
		}(byte(i))
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		k, ok := s.CachedGroupKey(string(rune('a' + i)))
		if !ok || k[0] != byte(i) {
			t.Fatalf("entry %d: got %v, %v", i, k, ok)
		}
	}
}
