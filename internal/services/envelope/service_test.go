package envelope_test

import (
	"bytes"
	"crypto/rsa"
	"errors"
	"testing"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
	"sealchat/internal/services/envelope"
)

// makeCodec builds the codec and a keypair for it.
func makeCodec(t *testing.T) (*envelope.Service, *crypto.Suite, *rsa.PrivateKey) {
	t.Helper()
	suite, err := crypto.NewSuite(crypto.DefaultParams())
	if err != nil {
		t.Fatalf("NewSuite: %v", err)
	}
	priv, err := suite.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	return envelope.New(suite), suite, priv
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	codec, _, priv := makeCodec(t)

	cases := []struct {
		name      string
		plaintext []byte
	}{
		{"short", []byte("hello world")},
		{"empty", nil},
		{"binary", []byte{0x00, 0xff, 0x10, 0x80}},
		{"large", bytes.Repeat([]byte("0123456789abcdef"), 256)}, // 4 KiB
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env, err := codec.Encrypt(tc.plaintext, &priv.PublicKey)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			got, err := codec.Decrypt(env, priv)
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if !bytes.Equal(got, tc.plaintext) {
				t.Fatalf("round trip: got %d bytes, want %d", len(got), len(tc.plaintext))
			}
		})
	}
}

// An empty message still carries the full fixed header plus the tag.
func TestEncrypt_EmptyMessageWireSize(t *testing.T) {
	codec, suite, priv := makeCodec(t)

	env, err := codec.Encrypt(nil, &priv.PublicKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	raw, err := crypto.FromB64(env)
	if err != nil {
		t.Fatalf("FromB64: %v", err)
	}
	want := suite.WrappedKeySize() + suite.NonceSize() + crypto.TagSize
	if len(raw) != want {
		t.Fatalf("empty envelope: got %d bytes, want %d", len(raw), want)
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	codec, suite, priv := makeCodec(t)

	env, err := codec.Encrypt([]byte("payload under test"), &priv.PublicKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	raw, err := crypto.FromB64(env)
	if err != nil {
		t.Fatalf("FromB64: %v", err)
	}
	header := suite.WrappedKeySize() + suite.NonceSize()
	for _, offset := range []int{header, header + 5, len(raw) - 1} {
		flipped := append([]byte(nil), raw...)
		flipped[offset] ^= 0x01
		if _, err := codec.Decrypt(crypto.B64(flipped), priv); !errors.Is(err, domain.ErrAuthentication) {
			t.Fatalf("offset %d: got %v, want ErrAuthentication", offset, err)
		}
	}
}

func TestDecrypt_TamperedWrappedKey(t *testing.T) {
	codec, _, priv := makeCodec(t)

	env, err := codec.Encrypt([]byte("payload"), &priv.PublicKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	raw, err := crypto.FromB64(env)
	if err != nil {
		t.Fatalf("FromB64: %v", err)
	}
	raw[10] ^= 0x01
	if _, err := codec.Decrypt(crypto.B64(raw), priv); !errors.Is(err, domain.ErrKeyUnwrap) {
		t.Fatalf("Decrypt: got %v, want ErrKeyUnwrap", err)
	}
}

func TestDecrypt_WrongPrivateKey(t *testing.T) {
	codec, suite, priv := makeCodec(t)
	other, err := suite.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	env, err := codec.Encrypt([]byte("for someone else"), &priv.PublicKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := codec.Decrypt(env, other); !errors.Is(err, domain.ErrKeyUnwrap) {
		t.Fatalf("Decrypt: got %v, want ErrKeyUnwrap", err)
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	codec, _, priv := makeCodec(t)

	cases := []struct {
		name     string
		envelope string
	}{
		{"not base64", "%%% not base64 %%%"},
		{"empty", ""},
		{"below header", crypto.B64(bytes.Repeat([]byte{1}, 100))},
		{"header minus one", crypto.B64(bytes.Repeat([]byte{1}, 267))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := codec.Decrypt(tc.envelope, priv); !errors.Is(err, domain.ErrMalformedEnvelope) {
				t.Fatalf("Decrypt: got %v, want ErrMalformedEnvelope", err)
			}
		})
	}
}

func TestEncryptDual_BothHalvesOpen(t *testing.T) {
	codec, suite, recipient := makeCodec(t)
	sender, err := suite.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	msg := []byte("kept for both sides")
	dm, err := codec.EncryptDual(msg, &recipient.PublicKey, &sender.PublicKey)
	if err != nil {
		t.Fatalf("EncryptDual: %v", err)
	}
	if dm.ForRecipient == dm.ForSender {
		t.Fatal("halves must be independent envelopes")
	}

	got, err := codec.Decrypt(dm.ForRecipient, recipient)
	if err != nil {
		t.Fatalf("Decrypt recipient half: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatal("recipient half: wrong plaintext")
	}
	got, err = codec.Decrypt(dm.ForSender, sender)
	if err != nil {
		t.Fatalf("Decrypt sender half: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatal("sender half: wrong plaintext")
	}

	// The sender's key must not open the recipient's half.
	if _, err := codec.Decrypt(dm.ForRecipient, sender); !errors.Is(err, domain.ErrKeyUnwrap) {
		t.Fatalf("cross decrypt: got %v, want ErrKeyUnwrap", err)
	}
}
