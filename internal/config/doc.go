// Package config loads credsweep configuration from YAML files. Values are
// layered as defaults, then the global file, then the local or explicit file,
// and the result is checked with Settings.Validate.
package config
