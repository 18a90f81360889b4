package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/redactyl/credsweep/internal/logger"
	"github.com/redactyl/credsweep/internal/types"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// DefaultFileName is used when a URL path has no usable final segment.
const DefaultFileName = "download"

// ErrInvalidScheme is returned by ValidateURL for anything but http(s).
var ErrInvalidScheme = errors.New("URL must start with http:// or https://")

// DownloadError is a network failure or a non-2xx response. StatusCode is
// zero for network errors.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Options configures a Fetcher.
type Options struct {
	// Dir receives downloaded files and is created if missing.
	Dir     string
	Timeout time.Duration
	// Client overrides the HTTP client; Timeout is ignored when set.
	Client *http.Client
	// Progress receives a progress bar while downloading; nil disables it.
	Progress io.Writer
	Logger   zerolog.Logger
}

// Fetcher downloads documents to local storage.
type Fetcher struct {
	client   *http.Client
	dir      string
	progress io.Writer
	logger   zerolog.Logger
}

func New(opts Options) (*Fetcher, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, &types.IOError{Op: "create download directory", Path: opts.Dir, Err: err}
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Fetcher{
		client:   client,
		dir:      opts.Dir,
		progress: opts.Progress,
		logger:   logger.Module(opts.Logger, "Fetcher"),
	}, nil
}

func (f *Fetcher) Dir() string { return f.dir }

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScheme, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrInvalidScheme, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidScheme, raw)
	}
	return nil
}

// LocalName returns the file name a URL is stored under: its final path
// segment, or DefaultFileName.
func LocalName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultFileName
	}
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" || base == ".." {
		return DefaultFileName
	}
	return base
}

// Fetch downloads rawURL into the fetcher directory and returns the local
// path. An existing file of the same name is overwritten. On failure no file
// is left behind.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &DownloadError{URL: rawURL, Err: err}
	}
	f.logger.Debug().Str("url", rawURL).Msg("Downloading document")
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &DownloadError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &DownloadError{URL: rawURL, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	dst := filepath.Join(f.dir, LocalName(rawURL))
	out, err := os.Create(dst)
	if err != nil {
		return "", &types.IOError{Op: "create", Path: dst, Err: err}
	}

	var w io.Writer = out
	var bar *progressbar.ProgressBar
	if f.progress != nil {
		bar = progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(f.progress),
			progressbar.OptionSetDescription("Downloading "+filepath.Base(dst)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		w = io.MultiWriter(out, bar)
	}

	n, copyErr := io.Copy(w, resp.Body)
	closeErr := out.Close()
	if bar != nil {
		_ = bar.Finish()
	}
	if copyErr != nil {
		_ = os.Remove(dst)
		var pathErr *os.PathError
		if errors.As(copyErr, &pathErr) {
			return "", &types.IOError{Op: "write", Path: dst, Err: copyErr}
		}
		return "", &DownloadError{URL: rawURL, Err: copyErr}
	}
	if closeErr != nil {
		_ = os.Remove(dst)
		return "", &types.IOError{Op: "close", Path: dst, Err: closeErr}
	}
	f.logger.Info().Str("url", rawURL).Str("file_path", dst).Int64("bytes", n).Msg("Downloaded document")
	return dst, nil
}
