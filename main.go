package main

import (
	"os"

	"github.com/audiovault/audiovault/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
