// Package main is the huddle CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/gridiron-labs/huddle-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
