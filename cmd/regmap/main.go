// Package main is the entry point for the regmap binary.
package main

import (
	"os"

	"regmap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
