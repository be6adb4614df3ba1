// Package main provides the lualint command.
package main

import (
	"os"

	"github.com/leapstack-labs/lualint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
