package deeplink

import "solwallet/internal/domain"

// ProviderInfo is the static configuration for one wallet provider.
type ProviderInfo struct {
	Name string
	URL  string
	Icon string
	// EncryptionKeyField is the query parameter the provider uses to carry
	// its ephemeral encryption public key on connect callbacks.
	EncryptionKeyField string
}

// The provider set is closed; the builder never invents new providers.
var providers = map[domain.Provider]ProviderInfo{
	domain.ProviderPhantom: {
		Name:               "Phantom",
		URL:                "https://phantom.app/ul/v1",
		Icon:               "https://www.phantom.app/img/logo.png",
		EncryptionKeyField: "phantom_encryption_public_key",
	},
	domain.ProviderSolflare: {
		Name:               "Solflare",
		URL:                "https://solflare.com/ul/v1",
		Icon:               "https://solflare.com/favicon.ico",
		EncryptionKeyField: "solflare_encryption_public_key",
	},
}

// Info returns the configuration for a provider.
func Info(p domain.Provider) (ProviderInfo, bool) {
	info, ok := providers[p]
	return info, ok
}

// Providers returns the configured provider identifiers.
func Providers() []domain.Provider {
	return []domain.Provider{domain.ProviderPhantom, domain.ProviderSolflare}
}
