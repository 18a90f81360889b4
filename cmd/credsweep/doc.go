// Package credsweep provides the command-line interface for credsweep. The
// root command runs an interactive menu that downloads a SQL dump, scans its
// INSERT statements for credential-like values and stores a JSON report per
// scan. Subcommands list detectors and manage configuration.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/credsweep/cmd/credsweep"
//	func main() { credsweep.Execute() }
package credsweep
