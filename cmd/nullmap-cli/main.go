package main

import (
	"errors"
	"os"

	"github.com/yndnr/nullmap-go/internal/cli/command"
	"github.com/yndnr/nullmap-go/internal/core/domain"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		command.PrintError(os.Stderr, "%v", err)
		if errors.Is(err, domain.ErrInvariantViolated) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
