package command

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/nullmap-go/internal/cli/output"
	"github.com/yndnr/nullmap-go/internal/harness/config"
	"github.com/yndnr/nullmap-go/internal/infra/buildinfo"
	"github.com/yndnr/nullmap-go/internal/infra/confloader"
	"github.com/yndnr/nullmap-go/internal/telemetry/logger"
	"github.com/yndnr/nullmap-go/pkg/cmap"
	"github.com/yndnr/nullmap-go/pkg/nullmap"
)

// Metadata keys set by the Before hook.
const (
	metaConfig = "config"
	metaLoader = "loader"
	metaLogger = "logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "nullmap-cli",
		Usage:   "Exercise a null-permitting concurrent map",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			WalkthroughCommand(),
			StressCommand(),
			SoakCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: setup,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
			EnvVars: []string{"NULLMAP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Output     string // table, json, yaml
	Wide       bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigFile: c.String("config"),
		LogLevel:   c.String("log-level"),
		LogFormat:  c.String("log-format"),
		Output:     c.String("output"),
		Wide:       c.Bool("wide"),
	}
}

// overrides maps the global flags that were set onto configuration keys.
func (f *GlobalFlags) overrides() map[string]any {
	o := make(map[string]any)
	if f.LogLevel != "" {
		o["log.level"] = f.LogLevel
	}
	if f.LogFormat != "" {
		o["log.format"] = f.LogFormat
	}
	return o
}

// setup loads the configuration and initializes the logger.
func setup(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	if _, err := output.ParseFormat(flags.Output); err != nil {
		return err
	}

	cfg, loader, err := config.Load(flags.ConfigFile, flags.overrides())
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaConfig] = cfg
	c.App.Metadata[metaLoader] = loader
	c.App.Metadata[metaLogger] = log
	return nil
}

// GetConfig returns a copy of the effective configuration.
func GetConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[metaConfig].(*config.Config); ok {
		copied := *cfg
		return &copied
	}
	return config.Default()
}

// GetLoader returns the loader that produced the configuration.
func GetLoader(c *cli.Context) *confloader.Loader {
	if l, ok := c.App.Metadata[metaLoader].(*confloader.Loader); ok {
		return l
	}
	return nil
}

// GetLogger returns the application logger.
func GetLogger(c *cli.Context) logger.Logger {
	if l, ok := c.App.Metadata[metaLogger].(logger.Logger); ok {
		return l
	}
	return logger.Default()
}

// render writes data to the app's writer in the selected output format.
func render(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	format, err := output.ParseFormat(flags.Output)
	if err != nil {
		return err
	}
	return output.NewFormatter(format, flags.Wide).Format(c.App.Writer, data)
}

// interactive reports whether progress indicators should be drawn.
func interactive(c *cli.Context) bool {
	return ParseGlobalFlags(c).Output == string(output.FormatTable)
}

// mapOptions returns the options shared by every map a command creates.
func mapOptions(cfg *config.Config, log *slog.Logger, extra ...nullmap.Option) []nullmap.Option {
	backendOpts := []cmap.Option{cmap.WithShardCount(cfg.Map.Shards)}
	if cfg.Map.ForbidZeroKeys {
		backendOpts = append(backendOpts, cmap.WithZeroKeysForbidden())
	}
	opts := []nullmap.Option{
		nullmap.WithLogger(log),
		nullmap.WithBackendOptions(backendOpts...),
	}
	return append(opts, extra...)
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}
