package main

import (
	"os"

	"github.com/openbacktest/obt/cmd/obt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
