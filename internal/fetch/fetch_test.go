package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/dumps/users.sql", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("INSERT INTO users (email) VALUES ('a@example.com');"))
	})
	mux.HandleFunc("/missing.sql", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newFetcher(t *testing.T, opts Options) *Fetcher {
	t.Helper()
	if opts.Dir == "" {
		opts.Dir = filepath.Join(t.TempDir(), "downloaded_docs")
	}
	opts.Logger = zerolog.Nop()
	f, err := New(opts)
	require.NoError(t, err)
	return f
}

func TestFetch_WritesLastPathSegment(t *testing.T) {
	srv := newServer(t)
	f := newFetcher(t, Options{})

	p, err := f.Fetch(context.Background(), srv.URL+"/dumps/users.sql")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.Dir(), "users.sql"), p)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "a@example.com")
}

func TestFetch_OverwritesExisting(t *testing.T) {
	srv := newServer(t)
	f := newFetcher(t, Options{})
	require.NoError(t, os.WriteFile(filepath.Join(f.Dir(), "users.sql"), []byte("stale content that is longer than the new body ......................."), 0o644))

	p, err := f.Fetch(context.Background(), srv.URL+"/dumps/users.sql")
	require.NoError(t, err)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "stale")
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := newServer(t)
	f := newFetcher(t, Options{})

	p, err := f.Fetch(context.Background(), srv.URL+"/missing.sql")
	assert.Empty(t, p)
	var dl *DownloadError
	require.True(t, errors.As(err, &dl))
	assert.Equal(t, http.StatusNotFound, dl.StatusCode)
	_, statErr := os.Stat(filepath.Join(f.Dir(), "missing.sql"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetch_NetworkError(t *testing.T) {
	srv := newServer(t)
	url := srv.URL + "/dumps/users.sql"
	srv.Close()

	f := newFetcher(t, Options{})
	_, err := f.Fetch(context.Background(), url)
	var dl *DownloadError
	require.True(t, errors.As(err, &dl))
	assert.Zero(t, dl.StatusCode)
	assert.Error(t, dl.Unwrap())
}

func TestFetch_Progress(t *testing.T) {
	srv := newServer(t)
	var progress bytes.Buffer
	f := newFetcher(t, Options{Progress: &progress})

	_, err := f.Fetch(context.Background(), srv.URL+"/dumps/users.sql")
	require.NoError(t, err)
	assert.NotZero(t, progress.Len())
}

func TestValidateURL(t *testing.T) {
	for _, ok := range []string{"http://example.com/a.sql", "https://example.com/", " https://h/x "} {
		assert.NoError(t, ValidateURL(ok), ok)
	}
	for _, bad := range []string{"ftp://example.com/a.sql", "example.com/a.sql", "http://", "", "file:///etc/passwd"} {
		err := ValidateURL(bad)
		assert.True(t, errors.Is(err, ErrInvalidScheme), bad)
	}
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "dump.sql", LocalName("https://h/a/b/dump.sql?x=1"))
	assert.Equal(t, DefaultFileName, LocalName("https://h/"))
	assert.Equal(t, DefaultFileName, LocalName("https://h"))
	assert.Equal(t, "b", LocalName("https://h/a/b/"))
}
