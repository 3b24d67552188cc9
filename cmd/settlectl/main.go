// Package main is the entry point for the settlectl binary.
package main

import (
	"os"

	"github.com/mmynk/settleup/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
