// Package session persists the set of connected wallets.
//
// Each wallet's ProviderSecret is stored as JSON under its own key, with an
// ordered index of addresses under a companion key so the set can be
// enumerated without reading every record. The two writes are not atomic;
// any inconsistency or corruption found on load is warned about and healed,
// never fatal.
package session
