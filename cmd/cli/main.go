package main

import (
	"fmt"
	"os"

	"github.com/celestiaorg/intakeflow/cmd/cli/commands"
	"github.com/celestiaorg/intakeflow/internal/config"
)

func main() {
	// Environment from a local .env is read before flags resolve their env fallbacks
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
