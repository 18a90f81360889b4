package credsweep

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/redactyl/credsweep/internal/audit"
	"github.com/redactyl/credsweep/internal/cache"
	"github.com/redactyl/credsweep/internal/engine"
	"github.com/redactyl/credsweep/internal/fetch"
	"github.com/redactyl/credsweep/internal/logger"
	"github.com/redactyl/credsweep/internal/report"
	"github.com/rs/zerolog"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// ShellOptions wires the interactive menu to its collaborators.
type ShellOptions struct {
	In      io.Reader
	Out     io.Writer
	Fetcher *fetch.Fetcher
	Store   *report.Store
	// History and IndexRoot are optional; scans are not recorded when unset.
	History   *audit.AuditLog
	IndexRoot string
	Scan      engine.Config
	NoColor   bool
	Logger    zerolog.Logger
}

// Shell runs the numbered menu loop: scan a URL, browse saved results, exit.
type Shell struct {
	opts   ShellOptions
	in     *bufio.Scanner
	out    io.Writer
	logger zerolog.Logger
}

func NewShell(opts ShellOptions) *Shell {
	in := bufio.NewScanner(opts.In)
	in.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Shell{
		opts:   opts,
		in:     in,
		out:    opts.Out,
		logger: logger.Module(opts.Logger, "Shell"),
	}
}

func (s *Shell) paint(st lipgloss.Style, text string) string {
	if s.opts.NoColor {
		return text
	}
	return st.Render(text)
}

func (s *Shell) printOpts() report.PrintOptions {
	return report.PrintOptions{NoColor: s.opts.NoColor}
}

// readLine prompts and returns the trimmed next line; ok is false on EOF.
func (s *Shell) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// Run drives the menu until the user exits or input ends. Only local I/O
// failures on report or download storage end it with an error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, s.paint(bannerStyle, "=== credsweep ==="))
		fmt.Fprintln(s.out, "1) Scan a SQL dump URL")
		fmt.Fprintln(s.out, "2) Browse saved results")
		fmt.Fprintln(s.out, "3) Exit")
		choice, ok := s.readLine("Select an option: ")
		if !ok {
			choice = "3"
		}
		switch choice {
		case "1":
			done, err := s.scan(ctx)
			if err != nil {
				return err
			}
			if done {
				fmt.Fprintln(s.out, "Goodbye.")
				return nil
			}
		case "2":
			done, err := s.browse()
			if err != nil {
				return err
			}
			if done {
				fmt.Fprintln(s.out, "Goodbye.")
				return nil
			}
		case "3":
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(s.out, s.paint(errorStyle, fmt.Sprintf("Invalid choice %q: enter 1, 2 or 3.", choice)))
		}
	}
}

// scan runs one fetch -> scan -> save cycle. done reports EOF at the prompt.
func (s *Shell) scan(ctx context.Context) (done bool, err error) {
	rawURL, ok := s.readLine("Enter URL: ")
	if !ok {
		return true, nil
	}
	if err := fetch.ValidateURL(rawURL); err != nil {
		fmt.Fprintln(s.out, s.paint(errorStyle, "Invalid URL: "+err.Error()))
		return false, nil
	}

	local, err := s.opts.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		var dlErr *fetch.DownloadError
		if errors.As(err, &dlErr) {
			s.logger.Warn().Err(err).Str("url", rawURL).Msg("Download failed")
			fmt.Fprintln(s.out, s.paint(errorStyle, "Download failed: "+err.Error()))
			return false, nil
		}
		return false, err
	}

	res, err := engine.ScanFile(s.opts.Scan, local)
	if err != nil {
		return false, err
	}
	source := sourceName(local)
	info, err := s.opts.Store.Save(res.Findings, source)
	if err != nil {
		return false, err
	}

	report.PrintCounts(s.out, res.Findings, report.PrintOptions{
		NoColor:    s.opts.NoColor,
		Duration:   res.Duration,
		Statements: res.Statements,
		Skipped:    res.Skipped,
	})
	fmt.Fprintln(s.out, "Saved report: "+info.Path)

	s.recordIndex(res.Digest, info.Name)
	if s.opts.History != nil {
		rec := audit.CreateScanRecord(rawURL, source, info.Name, res.Digest, res.Findings, res.Statements, res.Skipped, res.Duration)
		if err := s.opts.History.LogScan(rec); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to append scan history")
		}
	}
	return false, nil
}

// recordIndex notes digest -> report and tells the user about earlier scans
// of the same bytes.
func (s *Shell) recordIndex(digest, reportName string) {
	if s.opts.IndexRoot == "" {
		return
	}
	db, err := cache.Load(s.opts.IndexRoot)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Starting new scan index")
	}
	if prev := db.Seen(digest); len(prev) > 0 {
		fmt.Fprintln(s.out, s.paint(noteStyle, "Identical document scanned before: "+strings.Join(prev, ", ")))
	}
	db.Record(digest, reportName)
	if err := cache.Save(s.opts.IndexRoot, db); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to save scan index")
	}
}

func (s *Shell) browse() (done bool, err error) {
	infos, err := s.opts.Store.List()
	if err != nil {
		return false, err
	}
	var urls map[string]string
	if s.opts.History != nil {
		urls = s.opts.History.URLsByReport()
	}
	report.PrintList(s.out, infos, urls, s.printOpts())
	if len(infos) == 0 {
		return false, nil
	}

	sel, ok := s.readLine("Select a report number (blank to return): ")
	if !ok {
		return true, nil
	}
	if sel == "" {
		return false, nil
	}
	n, convErr := strconv.Atoi(sel)
	if convErr != nil || n < 1 || n > len(infos) {
		fmt.Fprintln(s.out, s.paint(errorStyle, fmt.Sprintf("Invalid selection %q: enter a number between 1 and %d.", sel, len(infos))))
		return false, nil
	}
	info := infos[n-1]
	fs, err := s.opts.Store.Load(info.Name)
	if err != nil {
		s.logger.Warn().Err(err).Str("report", info.Name).Msg("Failed to load report")
		fmt.Fprintln(s.out, s.paint(errorStyle, "Could not load report: "+err.Error()))
		return false, nil
	}
	report.PrintReport(s.out, info, fs, s.printOpts())
	return false, nil
}

// sourceName is the downloaded file name without its extension.
func sourceName(local string) string {
	base := filepath.Base(local)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
