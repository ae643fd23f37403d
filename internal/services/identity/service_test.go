package identity_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"solwallet/internal/crypto"
	"solwallet/internal/domain"
	"solwallet/internal/services/identity"
	"solwallet/internal/storage"
)

const storageKey = "solanaWalletEncryptionKey"

func TestEnsure_GeneratesAndPersists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	svc := identity.New(store, nil)

	_, ok := svc.PublicKey()
	require.False(t, ok)

	require.NoError(t, svc.Ensure(ctx))
	pub, ok := svc.PublicKey()
	require.True(t, ok)
	require.False(t, pub.IsZero())

	stored, ok, err := store.Get(ctx, storageKey)
	require.NoError(t, err)
	require.True(t, ok)
	secret, err := crypto.B58Key(stored)
	require.NoError(t, err)
	require.Equal(t, pub, crypto.PublicFromSecret(secret))
}

func TestEnsure_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := identity.New(storage.NewMemory(), nil)

	require.NoError(t, svc.Ensure(ctx))
	first, _ := svc.PublicKey()
	require.NoError(t, svc.Ensure(ctx))
	second, _ := svc.PublicKey()
	require.Equal(t, first, second)
}

func TestEnsure_LoadsPersistedKey(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	first := identity.New(store, nil)
	require.NoError(t, first.Ensure(ctx))
	want, _ := first.PublicKey()

	second := identity.New(store, nil)
	require.NoError(t, second.Ensure(ctx))
	got, _ := second.PublicKey()
	require.Equal(t, want, got)
}

func TestEnsure_MalformedKeyRegenerates(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Set(ctx, storageKey, "not!base58"))

	svc := identity.New(store, nil)
	require.NoError(t, svc.Ensure(ctx))
	_, ok := svc.PublicKey()
	require.True(t, ok)

	stored, ok, err := store.Get(ctx, storageKey)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = crypto.B58Key(stored)
	require.NoError(t, err)
}

func TestRegenerate_ChangesKey(t *testing.T) {
	ctx := context.Background()
	svc := identity.New(storage.NewMemory(), nil)

	require.NoError(t, svc.Ensure(ctx))
	before, _ := svc.PublicKey()
	require.NoError(t, svc.Regenerate(ctx))
	after, _ := svc.PublicKey()
	require.NotEqual(t, before, after)
}

func TestSharedSecret_MatchesWalletSide(t *testing.T) {
	ctx := context.Background()
	svc := identity.New(storage.NewMemory(), nil)
	require.NoError(t, svc.Ensure(ctx))

	walletKP, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	fromService, ok := svc.SharedSecret(walletKP.Public)
	require.True(t, ok)

	dappPub, _ := svc.PublicKey()
	fromWallet := crypto.SharedSecret(walletKP.Secret, dappPub)
	require.Equal(t, fromWallet, fromService)
}

type failingStorage struct {
	domain.Storage
}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("backend down")
}

func TestEnsure_StorageFailurePropagates(t *testing.T) {
	svc := identity.New(failingStorage{}, nil)
	require.Error(t, svc.Ensure(context.Background()))
}
