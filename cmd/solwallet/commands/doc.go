// Package commands implements the solwallet CLI.
//
// The CLI is a development host for the engine: it prints the deep-link URL
// each operation produces and reads the wallet's callback URL from stdin,
// standing in for the OS-level URL opener and deep-link registration a real
// host provides.
package commands
