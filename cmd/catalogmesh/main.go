// Package main provides the entry point for the catalogmesh CLI.
package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/catalogmesh/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
