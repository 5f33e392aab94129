// Package config defines the nullmap-cli configuration structure.
//
// Values are loaded by confloader from a YAML file, NULLMAP_ environment
// variables and command-line flags on top of Default().
package config
