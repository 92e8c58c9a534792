package main

import (
	"os"

	"github.com/mnakagawa/kakei/cmd/kakei/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
