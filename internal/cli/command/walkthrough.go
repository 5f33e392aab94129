package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/nullmap-go/internal/harness/workload"
	"github.com/yndnr/nullmap-go/internal/telemetry/logger"
	"github.com/yndnr/nullmap-go/pkg/nullmap"
)

// WalkthroughCommand returns the walkthrough command.
func WalkthroughCommand() *cli.Command {
	return &cli.Command{
		Name:   "walkthrough",
		Usage:  "Run the nil value scenario step by step and print every result",
		Action: runWalkthrough,
	}
}

func runWalkthrough(c *cli.Context) error {
	cfg := GetConfig(c)
	log := GetLogger(c)

	m := nullmap.NewSharded[string, *string](mapOptions(cfg, log.Slog())...)
	ctx := logger.WithLogger(c.Context, log)

	steps, err := workload.Walkthrough(ctx, m)
	if rerr := render(c, steps); rerr != nil {
		return rerr
	}
	return err
}
