package core

import (
	"github.com/redactyl/credsweep/internal/engine"
	"github.com/redactyl/credsweep/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Result = engine.Result
type FindingSet = types.FindingSet
type Tag = types.Tag

// ScanText classifies every INSERT statement in text with the default rules.
func ScanText(text string) FindingSet {
	return engine.Scan(Config{}, text).Findings
}

// ScanWithStats runs a configured scan and returns the findings together with
// statement counts and the document digest.
func ScanWithStats(cfg Config, text string) Result {
	return engine.Scan(cfg, text)
}

// ScanFile reads path and scans it.
func ScanFile(cfg Config, path string) (Result, error) {
	return engine.ScanFile(cfg, path)
}

// DetectorIDs returns the list of configured detector IDs.
func DetectorIDs() []string { return engine.DetectorIDs() }
