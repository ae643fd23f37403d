// Package storage provides concrete implementations of domain.Storage.
//
// The engine only ever talks to the abstract get/set/remove interface; the
// backends here cover the common hosts:
//   - Memory: process-local, for tests and throwaway sessions
//   - File: a single JSON document written atomically, for CLI hosts
//   - Redis: for server-side hosts that already run Redis
//
// All backends are read-after-write consistent within a process.
package storage
