package domain_test

import (
	"strings"
	"testing"

	"sealchat/internal/domain"
)

func TestParseRecoverySecret_RoundTrip(t *testing.T) {
	hex64 := strings.Repeat("ab", domain.SecretSize)
	s, err := domain.ParseRecoverySecret(hex64)
	if err != nil {
		t.Fatalf("ParseRecoverySecret: %v", err)
	}
	if s.Hex() != hex64 {
		t.Fatalf("got %q, want %q", s.Hex(), hex64)
	}
}

func TestParseRecoverySecret_NormalizesCase(t *testing.T) {
	upper := strings.Repeat("AB", domain.SecretSize)
	s, err := domain.ParseRecoverySecret(upper)
	if err != nil {
		t.Fatalf("ParseRecoverySecret: %v", err)
	}
	if s.Hex() != strings.ToLower(upper) {
		t.Fatalf("got %q, want lowercase form", s.Hex())
	}
}

func TestParseRecoverySecret_Rejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short", strings.Repeat("a", 63)},
		{"long", strings.Repeat("a", 65)},
		{"not hex", strings.Repeat("zz", domain.SecretSize)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := domain.ParseRecoverySecret(tc.in); err == nil {
				t.Fatalf("ParseRecoverySecret(%q): want error", tc.in)
			}
		})
	}
}

func TestParseUserID_RoundTrip(t *testing.T) {
	hex32 := strings.Repeat("0f", domain.UserIDSize)
	id, err := domain.ParseUserID(hex32)
	if err != nil {
		t.Fatalf("ParseUserID: %v", err)
	}
	if id.Hex() != hex32 {
		t.Fatalf("got %q, want %q", id.Hex(), hex32)
	}
	if id.String() != id.Hex() {
		t.Fatalf("String %q != Hex %q", id.String(), id.Hex())
	}
}

func TestParseUserID_Rejects(t *testing.T) {
	if _, err := domain.ParseUserID("1234"); err == nil {
		t.Fatal("short input: want error")
	}
	if _, err := domain.ParseUserID(strings.Repeat("xy", domain.UserIDSize)); err == nil {
		t.Fatal("non-hex input: want error")
	}
}

func TestGroupKeyMap_For(t *testing.T) {
	id, err := domain.ParseUserID(strings.Repeat("42", domain.UserIDSize))
	if err != nil {
		t.Fatalf("ParseUserID: %v", err)
	}
	m := domain.GroupKeyMap{id.Hex(): "d2FrZWQ="}

	got, ok := m.For(id)
	if !ok || got != "d2FrZWQ=" {
		t.Fatalf("For: got %q, %v", got, ok)
	}
	if _, ok := m.For(domain.UserID{}); ok {
		t.Fatal("For: unknown member should miss")
	}
}
