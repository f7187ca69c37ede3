// Package main is the entry point for the sheetforge CLI.
package main

import (
	"os"

	"sheetforge/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
