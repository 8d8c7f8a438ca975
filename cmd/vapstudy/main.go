package main

import (
	"os"

	"github.com/rustyeddy/vapstudy/cmd/vapstudy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
