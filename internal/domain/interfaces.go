package domain

import "context"

// Storage is the host-supplied key/value persistence capability. It must be
// read-after-write consistent within a single process. A missing key is
// reported via the ok result, not an error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Linking opens deep-link URLs via the host environment. Success only means
// the host accepted the request to launch or focus the target application.
type Linking interface {
	OpenURL(ctx context.Context, url string) error
}

// TransactionCodec splices the signatures from a wallet-signed serialized
// transaction onto the caller's original transaction, preserving any
// signatures the caller had already attached. Transaction internals stay
// opaque to the engine.
type TransactionCodec interface {
	MergeSignatures(original, signed []byte) ([]byte, error)
}

// IdentityService manages the dApp's long-lived encryption key pair.
type IdentityService interface {
	// Ensure loads or creates the identity; idempotent.
	Ensure(ctx context.Context) error
	// Regenerate replaces the identity. Existing session shared secrets
	// become undecryptable but are not deleted eagerly.
	Regenerate(ctx context.Context) error
	// PublicKey returns the current encryption public key.
	PublicKey() (Key32, bool)
	// SharedSecret derives the per-session shared secret for a remote
	// ephemeral public key.
	SharedSecret(peer Key32) (Key32, bool)
}

// SessionStore persists and indexes the set of connected wallets.
type SessionStore interface {
	LoadAll(ctx context.Context) error
	Upsert(ctx context.Context, secret ProviderSecret) error
	Remove(ctx context.Context, address string) error
	Enumerate() []ProviderSecret
	Lookup(address string) (ProviderSecret, bool)
}

// WalletService is the engine's operation surface. Each call dispatches one
// deep-link round trip (except ConnectedWallets) and blocks until the
// matching callback is delivered to HandleCallback.
type WalletService interface {
	Connect(ctx context.Context, provider Provider) (ConnectedWallet, error)
	Disconnect(ctx context.Context, address string) error
	SignMessage(ctx context.Context, address, message string) (string, error)
	SignTransaction(ctx context.Context, address string, transaction []byte) ([]byte, error)
	ConnectedWallets(ctx context.Context) ([]ConnectedWallet, error)
	HandleCallback(ctx context.Context, rawURL string) error
}
