package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/nullmap-go/internal/harness/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:      "test",
				Usage:     "Test a configuration file",
				ArgsUsage: "FILE",
				Action:    configTest,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	return render(c, GetConfig(c))
}

func configTest(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("configuration file path required")
	}
	path := c.Args().First()

	if _, _, err := config.Load(path, nil); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(c.App.Writer, "%s: configuration is valid\n", path)
	return nil
}
