package main

import (
	"os"

	"github.com/bnema/gigpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
