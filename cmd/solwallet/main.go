package main

import (
	"os"

	"solwallet/cmd/solwallet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
