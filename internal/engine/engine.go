package engine

import (
	"os"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/redactyl/credsweep/internal/detectors"
	"github.com/redactyl/credsweep/internal/sqlinsert"
	"github.com/redactyl/credsweep/internal/types"
)

// Config controls which rules a scan applies.
type Config struct {
	// Rules is the classification table; nil means detectors.DefaultRules.
	Rules       []detectors.Rule
	EnableTags  string
	DisableTags string
}

// Result holds the findings of one document plus scan statistics.
type Result struct {
	Findings   types.FindingSet
	Statements int // INSERT statements matched
	Records    int // statements split into records
	Skipped    int // multi-row or column/value count mismatch
	Bytes      int
	Digest     string
	Duration   time.Duration
}

// Scan runs a single pass over text. Malformed statements are skipped and
// only show up in Result.Skipped.
func Scan(cfg Config, text string) Result {
	start := time.Now()
	rules := cfg.Rules
	if rules == nil {
		rules = detectors.DefaultRules()
	}
	clf := detectors.New(detectors.Filter(rules, cfg.EnableTags, cfg.DisableTags))

	res := Result{
		Findings: types.NewFindingSet(),
		Bytes:    len(text),
		Digest:   fastHash([]byte(text)),
	}
	for _, st := range sqlinsert.FindStatements(text) {
		res.Statements++
		rec, ok := st.Record()
		if !ok {
			res.Skipped++
			continue
		}
		res.Records++
		for _, f := range rec {
			if f.Null {
				continue
			}
			res.Findings.AddFindings(clf.Classify(f.Name, f.Value))
		}
	}
	res.Duration = time.Since(start)
	return res
}

// ScanFile reads path and scans its contents.
func ScanFile(cfg Config, path string) (Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, &types.IOError{Op: "read", Path: path, Err: err}
	}
	return Scan(cfg, string(b)), nil
}

// DetectorIDs returns the tags a scan can report.
func DetectorIDs() []string { return detectors.IDs() }

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
