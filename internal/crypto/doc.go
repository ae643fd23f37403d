// Package crypto exposes the primitives used by the deep-link protocol.
//
// Contents
//
//   - NaCl box key pair generation and precomputed shared secrets
//     (GenerateKeyPair, SharedSecret, PublicFromSecret)
//   - Authenticated payload encryption with fresh 24-byte nonces
//     (Seal, Open)
//   - Base58 helpers for values that travel inside URLs and the
//     persisted store (B58, B58Decode, B58Key)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// The shared secret is the box precomputation of X25519 with HSalsa20, so
// SharedSecret(a.Secret, b.Public) == SharedSecret(b.Secret, a.Public) holds
// for any two key pairs, as the handshake requires.
package crypto
