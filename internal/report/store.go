package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/redactyl/credsweep/internal/logger"
	"github.com/redactyl/credsweep/internal/types"
	"github.com/rs/zerolog"
)

// TimeLayout is the timestamp suffix of every report file name.
const TimeLayout = "20060102_150405"

var reUnsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Info describes one stored report file.
type Info struct {
	Name      string
	Path      string
	Source    string
	CreatedAt time.Time
}

// Store persists scan findings as JSON files in a single directory. Reports
// are written once and never modified.
type Store struct {
	dir    string
	now    func() time.Time
	logger zerolog.Logger
}

// NewStore creates dir if needed and returns a store rooted there.
func NewStore(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &types.IOError{Op: "create report directory", Path: dir, Err: err}
	}
	return &Store{
		dir:    dir,
		now:    time.Now,
		logger: logger.Module(log, "ReportStore"),
	}, nil
}

func (s *Store) Dir() string { return s.dir }

// SetClock replaces the time source used for report names.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// FileName returns the report file name for source at t.
func FileName(source string, t time.Time) string {
	return SanitizeSource(source) + "_" + t.Format(TimeLayout) + ".json"
}

// SanitizeSource makes source safe to embed in a file name.
func SanitizeSource(source string) string {
	s := strings.Trim(reUnsafeName.ReplaceAllString(source, "_"), "._")
	if s == "" {
		return "report"
	}
	return s
}

// ParseName splits a report file name into its source and timestamp.
func ParseName(name string) (string, time.Time, bool) {
	base, ok := strings.CutSuffix(name, ".json")
	if !ok || len(base) < len(TimeLayout)+2 {
		return "", time.Time{}, false
	}
	cut := len(base) - len(TimeLayout)
	if base[cut-1] != '_' {
		return "", time.Time{}, false
	}
	ts, err := time.ParseInLocation(TimeLayout, base[cut:], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return base[:cut-1], ts, true
}

// Save writes findings under a name derived from source and the current
// second. A second save for the same source within the same second replaces
// the first file.
func (s *Store) Save(findings types.FindingSet, source string) (Info, error) {
	if findings == nil {
		findings = types.NewFindingSet()
	}
	created := s.now().Truncate(time.Second)
	name := FileName(source, created)
	path := filepath.Join(s.dir, name)

	b, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return Info{}, fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return Info{}, &types.IOError{Op: "write report", Path: path, Err: err}
	}
	s.logger.Info().Str("file_path", path).Int("findings", findings.Total()).Msg("Saved scan report")
	return Info{Name: name, Path: path, Source: SanitizeSource(source), CreatedAt: created}, nil
}

// List returns every stored report, newest first.
func (s *Store) List() ([]Info, error) {
	names, err := doublestar.Glob(os.DirFS(s.dir), "*.json")
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	out := make([]Info, 0, len(names))
	for _, name := range names {
		info := Info{Name: name, Path: filepath.Join(s.dir, name)}
		if src, ts, ok := ParseName(name); ok {
			info.Source, info.CreatedAt = src, ts
		} else {
			info.Source = strings.TrimSuffix(name, ".json")
			if st, err := os.Stat(info.Path); err == nil {
				info.CreatedAt = st.ModTime()
			}
		}
		out = append(out, info)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name > out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Load reads the named report.
func (s *Store) Load(name string) (types.FindingSet, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid report name %q", name)
	}
	path := filepath.Join(s.dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.IOError{Op: "read report", Path: path, Err: err}
	}
	var fs types.FindingSet
	if err := json.Unmarshal(b, &fs); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", name, err)
	}
	return fs, nil
}
