// Package config loads processing methods for the command line tools.
//
// A method starts from the built-in defaults, is overlaid by an optional
// YAML file and then by CHROM_* environment variables, and is validated
// before use.
package config
