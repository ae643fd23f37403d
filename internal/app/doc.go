// Package app wires application dependencies for hosts of the engine.
//
// It builds the storage backend, the identity and session services and the
// wallet facade from Config, exposing them via the Wire struct.
package app
