package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/redactyl/credsweep/internal/types"
)

// PreviewLimit is how many values per tag PrintReport shows.
const PreviewLimit = 5

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	tagStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
	// Statements and Skipped are shown in the count footer when non-zero.
	Statements int
	Skipped    int
}

func style(s lipgloss.Style, text string, noColor bool) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

// PrintCounts writes a per-tag count table for a finished scan.
func PrintCounts(w io.Writer, findings types.FindingSet, opts PrintOptions) {
	fmt.Fprintln(w, style(headingStyle, "Scan results", opts.NoColor))
	if findings.Total() == 0 {
		fmt.Fprintln(w, "No credentials found ✅")
	}
	table := tablewriter.NewWriter(w)
	table.Header("TAG", "COUNT")
	for _, tag := range types.Tags() {
		_ = table.Append([]string{tag.ReportKey(), strconv.Itoa(findings.Count(tag))})
	}
	_ = table.Append([]string{"total", strconv.Itoa(findings.Total())})
	_ = table.Render()

	if opts.Statements > 0 || opts.Duration > 0 {
		fmt.Fprintf(w, "Statements: %d (skipped: %d)\n", opts.Statements, opts.Skipped)
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
	}
}

// PrintReport writes one stored report: per tag the count and the first
// PreviewLimit values in sorted order.
func PrintReport(w io.Writer, info Info, findings types.FindingSet, opts PrintOptions) {
	title := "Report: " + info.Name
	fmt.Fprintln(w, style(headingStyle, title, opts.NoColor))
	if !info.CreatedAt.IsZero() {
		fmt.Fprintln(w, style(dimStyle, "Source: "+info.Source+"  Created: "+info.CreatedAt.Format("2006-01-02 15:04:05"), opts.NoColor))
	}
	for _, tag := range types.Tags() {
		vals := findings.Values(tag)
		fmt.Fprintf(w, "%s: %d\n", style(tagStyle, tag.ReportKey(), opts.NoColor), len(vals))
		for i, v := range vals {
			if i == PreviewLimit {
				fmt.Fprintf(w, "  ... and %d more\n", len(vals)-PreviewLimit)
				break
			}
			fmt.Fprintf(w, "  - %s\n", v)
		}
	}
}

// PrintList writes a numbered listing of stored reports. urls maps report
// names to the URL they were scanned from, when known.
func PrintList(w io.Writer, infos []Info, urls map[string]string, opts PrintOptions) {
	fmt.Fprintln(w, style(headingStyle, "Saved results", opts.NoColor))
	if len(infos) == 0 {
		fmt.Fprintln(w, "No saved results found.")
		return
	}
	table := tablewriter.NewWriter(w)
	table.Header("#", "REPORT", "SOURCE", "CREATED", "URL")
	for i, in := range infos {
		created := ""
		if !in.CreatedAt.IsZero() {
			created = in.CreatedAt.Format("2006-01-02 15:04:05")
		}
		_ = table.Append([]string{strconv.Itoa(i + 1), in.Name, in.Source, created, urls[in.Name]})
	}
	_ = table.Render()
}
