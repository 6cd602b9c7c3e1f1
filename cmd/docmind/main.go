package main

import (
	"os"

	"github.com/docmind/docmind/cmd/docmind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
