// Package core provides a small, stable facade over credsweep's internal
// scanner for programs that want to classify SQL dumps without the
// interactive shell.
//
// Example:
//
//	fs := core.ScanText(dump)
//	_ = core.MarshalFindings(os.Stdout, fs)
package core
