package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sealchat/internal/domain"
	"sealchat/internal/store"
)

// stores returns every KeyValueStore implementation under test.
func stores(t *testing.T) map[string]domain.KeyValueStore {
	t.Helper()
	return map[string]domain.KeyValueStore{
		"file":   store.NewFileStore(t.TempDir()),
		"memory": store.NewMemoryStore(),
	}
}

func TestStore_SetGetRemove(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set("identity", []byte("v1")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := kv.Get("identity")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != "v1" {
				t.Fatalf("Get: got %q, want %q", got, "v1")
			}

			// Overwrite.
			if err := kv.Set("identity", []byte("v2")); err != nil {
				t.Fatalf("Set again: %v", err)
			}
			got, err = kv.Get("identity")
			if err != nil {
				t.Fatalf("Get after overwrite: %v", err)
			}
			if string(got) != "v2" {
				t.Fatalf("Get after overwrite: got %q, want %q", got, "v2")
			}

			if err := kv.Remove("identity"); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if _, err := kv.Get("identity"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("Get after Remove: got %v, want ErrNotFound", err)
			}
			if err := kv.Remove("identity"); err != nil {
				t.Fatalf("Remove of missing key: %v", err)
			}
		})
	}
}

func TestStore_MissingKey(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get("absent"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("Get: got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	kv := store.NewFileStore(t.TempDir())
	for _, key := range []string{"../escape", "a/b", "", ".hidden", "UPPER"} {
		if err := kv.Set(key, []byte("x")); err == nil {
			t.Fatalf("Set(%q): want error", key)
		}
		if _, err := kv.Get(key); err == nil {
			t.Fatalf("Get(%q): want error", key)
		}
	}
}

func TestFileStore_Permissions(t *testing.T) {
	dir := t.TempDir()
	kv := store.NewFileStore(dir)
	if err := kv.Set("identity", []byte("secret")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "identity"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("permissions: got %o, want 600", perm)
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	kv := store.NewMemoryStore()
	in := []byte("original")
	if err := kv.Set("k", in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in[0] = 'X'

	got, err := kv.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("stored value mutated: %q", got)
	}
	got[0] = 'Y'
	again, err := kv.Get("k")
	if err != nil {
		t.Fatalf("Get again: %v", err)
	}
	if string(again) != "original" {
		t.Fatalf("returned slice aliases storage: %q", again)
	}
}
