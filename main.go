package main

import (
	"os"

	"github.com/relokit/settler/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
