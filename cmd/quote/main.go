// Package main is the entry point for the quote CLI.
package main

import (
	"os"

	"storage-price-estimator/cmd/quote/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
