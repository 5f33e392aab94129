// Package output provides output formatting for nullmap-cli.
//
// This package handles all CLI output formatting:
//
//   - formatter.go: Formatter interface and factory
//   - table.go: Table rendering with wide mode support
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//   - progress.go: Round counter for stress runs
//   - spinner.go: Activity indicator for soak runs
//
// Progress and spinner output goes to stderr so that formatted results on
// stdout stay machine-readable.
package output
