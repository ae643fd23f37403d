package domain

// Provider identifies a wallet application with its own deep-link endpoint.
// The set of providers is closed; see internal/protocol/deeplink for the
// per-provider configuration.
type Provider string

const (
	ProviderPhantom  Provider = "Phantom"
	ProviderSolflare Provider = "Solflare"
)

// Cluster selects which Solana cluster the wallet should operate against.
type Cluster string

const (
	ClusterMainnetBeta Cluster = "mainnet-beta"
	ClusterDevnet      Cluster = "devnet"
	ClusterTestnet     Cluster = "testnet"
)

// Key32 is a 32-byte key (X25519 public/secret key or a derived shared secret).
type Key32 [32]byte

// Slice returns the key as a []byte.
func (k Key32) Slice() []byte { return k[:] }

// IsZero reports whether the key is all zeros.
func (k Key32) IsZero() bool { return k == Key32{} }

// ConnectedWallet is the caller-visible description of one connected wallet.
type ConnectedWallet struct {
	Provider Provider `json:"provider"`
	Address  string   `json:"address"`
}

// ProviderSecret holds the per-wallet session state established by a
// successful connect round trip. It is keyed by the wallet's public address
// and owned exclusively by the session store.
type ProviderSecret struct {
	Provider     Provider // wallet application the session belongs to
	Wallet       string   // wallet public address, base58
	Session      string   // opaque session token issued by the wallet
	PubKey       Key32    // wallet's ephemeral encryption public key
	SharedSecret Key32    // derived shared secret for this session
}

// CallbackParams is the flat query-parameter map extracted from an inbound
// callback URL, plus the two fields every callback must carry.
type CallbackParams struct {
	Provider  Provider
	RequestID uint64
	Values    map[string]string
}

// Get returns the named query parameter and whether it was present.
func (p CallbackParams) Get(name string) (string, bool) {
	v, ok := p.Values[name]
	return v, ok
}
