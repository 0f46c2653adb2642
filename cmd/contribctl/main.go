package main

import (
	"os"

	"github.com/contribgraph/backend/cmd/contribctl/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
