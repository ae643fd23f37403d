package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"solwallet/internal/domain"
)

// Callback paths appended to the configured redirect base URL. The resulting
// redirect_link carries provider and requestId as its own query parameters so
// the callback can be routed without additional state.
const (
	PathConnect         = "/solanawallet/onconnect"
	PathDisconnect      = "/solanawallet/ondisconnect"
	PathSignMessage     = "/solanawallet/onsignmessage"
	PathSignTransaction = "/solanawallet/onsigntransaction"
)

// RedirectURL builds the redirect_link value for one pending request.
func RedirectURL(base, path string, provider domain.Provider, requestID uint64) string {
	return fmt.Sprintf("%s%s?provider=%s&requestId=%d",
		strings.TrimSuffix(base, "/"), path, provider, requestID)
}

// BuildConnectURL builds the provider's connect deep link. All parameters
// travel in plaintext; the encryption handshake completes on the callback.
func BuildConnectURL(provider domain.Provider, appURL, dappPublicKey string, cluster domain.Cluster, redirect string) (string, error) {
	info, ok := Info(provider)
	if !ok {
		return "", domain.ErrUnknownProvider
	}
	q := url.Values{}
	q.Set("app_url", appURL)
	q.Set("dapp_encryption_public_key", dappPublicKey)
	q.Set("redirect_link", redirect)
	q.Set("cluster", string(cluster))
	return info.URL + "/connect?" + q.Encode(), nil
}

// BuildDisconnectURL builds the provider's disconnect deep link. The nonce
// and payload are base58-encoded box output produced by the caller.
func BuildDisconnectURL(provider domain.Provider, dappPublicKey, nonce, payload, redirect string) (string, error) {
	return buildEncryptedURL(provider, "/disconnect", dappPublicKey, nonce, payload, redirect)
}

// BuildSignMessageURL builds the provider's signMessage deep link.
func BuildSignMessageURL(provider domain.Provider, dappPublicKey, nonce, payload, redirect string) (string, error) {
	return buildEncryptedURL(provider, "/signMessage", dappPublicKey, nonce, payload, redirect)
}

// BuildSignTransactionURL builds the provider's signTransaction deep link.
// Identical in shape to signMessage; the payload carries the serialized
// transaction instead of message text.
func BuildSignTransactionURL(provider domain.Provider, dappPublicKey, nonce, payload, redirect string) (string, error) {
	return buildEncryptedURL(provider, "/signTransaction", dappPublicKey, nonce, payload, redirect)
}

func buildEncryptedURL(provider domain.Provider, endpoint, dappPublicKey, nonce, payload, redirect string) (string, error) {
	info, ok := Info(provider)
	if !ok {
		return "", domain.ErrUnknownProvider
	}
	q := url.Values{}
	q.Set("dapp_encryption_public_key", dappPublicKey)
	q.Set("nonce", nonce)
	q.Set("redirect_link", redirect)
	q.Set("payload", payload)
	return info.URL + endpoint + "?" + q.Encode(), nil
}
