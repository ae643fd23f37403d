// Package identity manages the dApp's long-lived encryption key pair.
//
// The secret key is persisted base58-encoded under a well-known storage key.
// Loading tolerates malformed stored data by falling back to regeneration;
// only a failing persistence layer is an error.
package identity
