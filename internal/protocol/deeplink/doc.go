// Package deeplink implements the wire side of the wallet deep-link protocol.
//
// It owns the closed set of provider endpoints, builds the outbound URLs for
// connect/disconnect/signMessage/signTransaction, and parses inbound callback
// URLs back into parameters, normalizing known provider quirks first. It has
// no state; correlation and sessions live in internal/services/wallet.
package deeplink
