package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"solwallet/internal/crypto"
)

func TestSharedSecret_Symmetry(t *testing.T) {
	a, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	b, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	ab := crypto.SharedSecret(a.Secret, b.Public)
	ba := crypto.SharedSecret(b.Secret, a.Public)
	require.Equal(t, ab, ba)
	require.False(t, ab.IsZero())
}

func TestPublicFromSecret(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	require.Equal(t, kp.Public, crypto.PublicFromSecret(kp.Secret))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	a, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	b, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	shared := crypto.SharedSecret(a.Secret, b.Public)

	payload := map[string]string{"session": "Sess1", "message": "hello"}
	nonce, ct := crypto.Seal(payload, shared)
	require.Len(t, nonce, crypto.NonceSize)
	require.NotEmpty(t, ct)

	plaintext, ok := crypto.Open(ct, nonce, shared)
	require.True(t, ok)
	require.JSONEq(t, `{"session":"Sess1","message":"hello"}`, string(plaintext))
}

func TestOpen_WrongKeyFails(t *testing.T) {
	a, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	b, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	c, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	shared := crypto.SharedSecret(a.Secret, b.Public)
	other := crypto.SharedSecret(a.Secret, c.Public)

	nonce, ct := crypto.Seal(map[string]string{"k": "v"}, shared)
	_, ok := crypto.Open(ct, nonce, other)
	require.False(t, ok)
}

func TestOpen_TamperedFails(t *testing.T) {
	a, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	b, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	shared := crypto.SharedSecret(a.Secret, b.Public)

	nonce, ct := crypto.Seal(map[string]string{"k": "v"}, shared)
	ct[0] ^= 0x01
	_, ok := crypto.Open(ct, nonce, shared)
	require.False(t, ok)

	_, ok = crypto.Open(ct, []byte("short"), shared)
	require.False(t, ok)
}

func TestSeal_UnserializablePayloadDegrades(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	shared := crypto.SharedSecret(kp.Secret, kp.Public)

	nonce, ct := crypto.Seal(make(chan int), shared)
	require.Empty(t, nonce)
	require.Empty(t, ct)
}

func TestB58Key(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	got, err := crypto.B58Key(crypto.B58(kp.Public.Slice()))
	require.NoError(t, err)
	require.Equal(t, kp.Public, got)

	_, err = crypto.B58Key("not!base58")
	require.Error(t, err)

	_, err = crypto.B58Key(crypto.B58([]byte("short")))
	require.Error(t, err)
}
