// Package wallet is the engine's operation surface.
//
// Each operation mints a correlation id, builds and dispatches a deep-link
// URL through the injected Linking capability, then blocks on a one-shot
// result slot until the host delivers the wallet's callback URL to
// HandleCallback. Connect establishes the encrypted session; disconnect and
// the sign operations run under the stored per-wallet shared secret.
package wallet
