package main

import (
	"os"

	"provisionbot/cmd/provisionbot/cmd"
)

// ENTRY POINT

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
