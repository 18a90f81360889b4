// Package detectors classifies a single column/value pair from an INSERT
// statement into zero or more credential tags. Each Rule pairs a tag with a
// case-insensitive pattern matched against "field=value".
package detectors
