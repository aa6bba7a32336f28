package main

import (
	"os"

	"github.com/mwhaley/trimdiff/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
