// Package main is the entry point for the magnetdrop CLI.
package main

import (
	"os"

	"github.com/ytget/magnetdrop/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
