// Package main is the entry point for the margincalc CLI.
package main

import (
	"os"

	"github.com/aaparts/whatif-margin/cmd/margincalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
