package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redactyl/credsweep/internal/types"
)

// FileName is the history file kept in the output root.
const FileName = "scan_history.jsonl"

// ScanRecord is one completed scan. Only counts are stored, never values.
type ScanRecord struct {
	Timestamp  time.Time      `json:"timestamp"`
	ScanID     string         `json:"scan_id"`
	URL        string         `json:"url"`
	Source     string         `json:"source"`
	Report     string         `json:"report"`
	Digest     string         `json:"digest"`
	Statements int            `json:"statements"`
	Skipped    int            `json:"skipped"`
	Counts     map[string]int `json:"counts"`
	Duration   string         `json:"duration"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(root string) *AuditLog {
	return &AuditLog{logPath: filepath.Join(root, FileName)}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns every record, newest first. A missing file is an
// empty history.
func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record ScanRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogScan appends record to the history.
func (a *AuditLog) LogScan(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = fmt.Sprintf("scan_%d", record.Timestamp.Unix())
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return &types.IOError{Op: "open audit log", Path: a.logPath, Err: err}
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return &types.IOError{Op: "write audit record", Path: a.logPath, Err: err}
	}
	return nil
}

// URLsByReport maps report file names to the URL they were scanned from.
func (a *AuditLog) URLsByReport() map[string]string {
	records, err := a.LoadHistory()
	if err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(records))
	// newest first: keep the most recent URL for a reused report name
	for _, r := range records {
		if _, ok := out[r.Report]; !ok {
			out[r.Report] = r.URL
		}
	}
	return out
}

func CreateScanRecord(
	url string,
	source string,
	reportName string,
	digest string,
	findings types.FindingSet,
	statements int,
	skipped int,
	duration time.Duration,
) ScanRecord {
	counts := make(map[string]int, len(types.Tags()))
	for _, tag := range types.Tags() {
		counts[tag.ReportKey()] = findings.Count(tag)
	}
	return ScanRecord{
		Timestamp:  time.Now(),
		URL:        url,
		Source:     source,
		Report:     reportName,
		Digest:     digest,
		Statements: statements,
		Skipped:    skipped,
		Counts:     counts,
		Duration:   duration.String(),
	}
}
