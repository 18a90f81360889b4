package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/redactyl/credsweep/internal/types"
)

func TestPrintCounts_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintCounts(&buf, types.NewFindingSet(), PrintOptions{NoColor: true, Duration: 1200 * time.Millisecond, Statements: 3, Skipped: 1})
	out := buf.String()
	if !strings.Contains(out, "No credentials found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Statements: 3 (skipped: 1)") {
		t.Fatalf("expected statement footer; got: %q", out)
	}
	for _, tag := range types.Tags() {
		if !strings.Contains(out, tag.ReportKey()) {
			t.Fatalf("expected row for %s; got: %q", tag.ReportKey(), out)
		}
	}
}

func TestPrintCounts_WithFindings(t *testing.T) {
	fs := types.NewFindingSet()
	fs.Add(types.TagPassword, "hunter2")
	var buf bytes.Buffer
	PrintCounts(&buf, fs, PrintOptions{NoColor: true})
	out := buf.String()
	if strings.Contains(out, "No credentials found") {
		t.Fatalf("unexpected empty message; got: %q", out)
	}
	if !strings.Contains(out, "passwords") || !strings.Contains(out, "1") {
		t.Fatalf("expected passwords row; got: %q", out)
	}
	if strings.Contains(out, "hunter2") {
		t.Fatalf("count table must not print values; got: %q", out)
	}
}

func TestPrintReport_Elides(t *testing.T) {
	fs := types.NewFindingSet()
	for i := 0; i < 8; i++ {
		fs.Add(types.TagEmail, fmt.Sprintf("user%d@example.com", i))
	}
	var buf bytes.Buffer
	PrintReport(&buf, Info{Name: "dump_20260102_030405.json"}, fs, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "emails: 8") {
		t.Fatalf("expected count line; got: %q", out)
	}
	if !strings.Contains(out, "user4@example.com") || strings.Contains(out, "user5@example.com") {
		t.Fatalf("expected exactly the first five values; got: %q", out)
	}
	if !strings.Contains(out, "... and 3 more") {
		t.Fatalf("expected elision line; got: %q", out)
	}
	if !strings.Contains(out, "ssns: 0") {
		t.Fatalf("expected empty tags to be listed; got: %q", out)
	}
}

func TestPrintReport_NoElisionAtLimit(t *testing.T) {
	fs := types.NewFindingSet()
	for i := 0; i < PreviewLimit; i++ {
		fs.Add(types.TagName, fmt.Sprintf("Name %c", 'A'+i))
	}
	var buf bytes.Buffer
	PrintReport(&buf, Info{Name: "x.json"}, fs, PrintOptions{NoColor: true})
	if strings.Contains(buf.String(), "more") {
		t.Fatalf("did not expect elision; got: %q", buf.String())
	}
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	PrintList(&buf, nil, nil, PrintOptions{NoColor: true})
	if !strings.Contains(buf.String(), "No saved results found.") {
		t.Fatalf("expected empty listing message; got: %q", buf.String())
	}

	buf.Reset()
	infos := []Info{{Name: "dump_20260102_030405.json", Source: "dump", CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}}
	PrintList(&buf, infos, map[string]string{"dump_20260102_030405.json": "https://h/dump.sql"}, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "dump_20260102_030405.json") || !strings.Contains(out, "https://h/dump.sql") {
		t.Fatalf("expected report row with url; got: %q", out)
	}
}
