// Package confloader loads nullmap-cli configuration.
//
// It uses koanf as the underlying library and supports:
//
//   - YAML configuration files
//   - Environment variables with the NULLMAP_ prefix
//   - In-memory maps for defaults and command-line flags
//   - Reloading when the configuration file changes (fsnotify)
//
// Priority (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Default values
package confloader
