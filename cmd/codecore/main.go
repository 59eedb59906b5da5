// Package main provides the entry point for the codecore CLI.
package main

import (
	"os"

	"github.com/mnemolite/codecore/cmd/codecore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
