package core

import (
	"encoding/json"
	"io"

	"github.com/redactyl/credsweep/internal/types"
)

// MarshalFindings writes findings in the report file shape: one sorted array
// per tag key.
func MarshalFindings(w io.Writer, findings FindingSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings decodes a report. Missing tag keys become empty sets.
func UnmarshalFindings(r io.Reader) (FindingSet, error) {
	fs := types.NewFindingSet()
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}
