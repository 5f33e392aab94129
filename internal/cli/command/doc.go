// Package command provides CLI command definitions for nullmap-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, configuration and logger setup
//   - walkthrough.go: End-to-end nil value scenario
//   - stress.go: Concurrent PutIfAbsent races
//   - soak.go: Long-running mixed workload with a /metrics endpoint
//   - config.go: Configuration subcommand group
//   - version.go: Build information
//
// Commands follow a consistent pattern of reading the effective
// configuration, applying command flags, running a workload and
// formatting the result.
package command
