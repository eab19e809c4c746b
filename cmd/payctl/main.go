// Package main is the entry point for the payctl CLI.
package main

import (
	"os"

	"github.com/pigeonworks-llc/payment-instructions/cmd/payctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
