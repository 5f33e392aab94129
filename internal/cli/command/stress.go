package command

import (
	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/nullmap-go/internal/cli/output"
	"github.com/yndnr/nullmap-go/internal/harness/config"
	"github.com/yndnr/nullmap-go/internal/harness/workload"
	"github.com/yndnr/nullmap-go/internal/telemetry/logger"
	"github.com/yndnr/nullmap-go/pkg/nullmap"
)

// StressCommand returns the stress command.
func StressCommand() *cli.Command {
	return &cli.Command{
		Name:  "stress",
		Usage: "Race goroutines on PutIfAbsent and verify exactly one wins each round",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "goroutines",
				Aliases: []string{"g"},
				Usage:   "Goroutines racing on each key",
			},
			&cli.IntFlag{
				Name:    "rounds",
				Aliases: []string{"r"},
				Usage:   "Number of rounds, each on a fresh key",
			},
			&cli.IntFlag{
				Name:  "shards",
				Usage: "Shard count of the map",
			},
		},
		Action: runStress,
	}
}

// stressResult is the rendered outcome of a stress run.
type stressResult struct {
	RunID string `json:"run_id" yaml:"run_id"`
	workload.Report `yaml:",inline"`
}

func runStress(c *cli.Context) error {
	cfg := GetConfig(c)
	if c.IsSet("goroutines") {
		cfg.Workload.Goroutines = c.Int("goroutines")
	}
	if c.IsSet("rounds") {
		cfg.Workload.Rounds = c.Int("rounds")
	}
	if c.IsSet("shards") {
		cfg.Map.Shards = c.Int("shards")
	}
	if err := config.Verify(cfg); err != nil {
		return err
	}

	log := GetLogger(c)
	runID := ulid.Make().String()
	ctx := logger.WithRunID(logger.WithLogger(c.Context, log), runID)

	stressCfg := workload.StressConfig{
		Goroutines: cfg.Workload.Goroutines,
		Rounds:     cfg.Workload.Rounds,
	}
	var bar *output.ProgressBar
	if interactive(c) {
		bar = output.NewProgressBar(c.App.ErrWriter, "rounds", cfg.Workload.Rounds)
		stressCfg.OnRound = bar.Set
	}

	m := nullmap.NewSharded[string, string](mapOptions(cfg, log.Slog())...)
	report, err := workload.Stress(ctx, stressCfg, m)
	if bar != nil {
		bar.Finish()
	}

	if rerr := render(c, stressResult{RunID: runID, Report: report}); rerr != nil {
		return rerr
	}
	return err
}
