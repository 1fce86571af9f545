// Package fetch retrieves remote playlists and stores them as local files.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// DefaultTimeout bounds a single download.
const DefaultTimeout = 30 * time.Second

// Error reports a failed download.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fetcher downloads playlists over HTTP.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher whose requests time out after timeout.
// A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsRemote reports whether source names an http or https URL.
func IsRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch returns the full response body for playlistURL.
func (f *Fetcher) Fetch(ctx context.Context, playlistURL string) ([]byte, error) {
	body, err := f.open(ctx, playlistURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &Error{URL: playlistURL, Err: err}
	}
	return data, nil
}

// Download stores the response body for playlistURL at dest and returns the
// number of bytes written. Nothing is written unless the whole body arrives.
func (f *Fetcher) Download(ctx context.Context, playlistURL, dest string) (int64, error) {
	data, err := f.Fetch(ctx, playlistURL)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		os.Remove(dest)
		return 0, fmt.Errorf("failed to write %s: %w", dest, err)
	}

	return int64(len(data)), nil
}

func (f *Fetcher) open(ctx context.Context, playlistURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, playlistURL, nil)
	if err != nil {
		return nil, &Error{URL: playlistURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: playlistURL, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &Error{URL: playlistURL, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	return resp.Body, nil
}
