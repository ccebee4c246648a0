package schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultExportURL is the OCSF schema export API endpoint.
const DefaultExportURL = "https://schema.ocsf.io/export/schema"

// FetchError reports a failed schema download.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("schema download failed: GET %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError reports a schema cache file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// CachePath returns the on-disk location of a cached schema export:
// <cacheDir>/<version>/schema.json.
func CachePath(cacheDir, version string) string {
	return filepath.Join(cacheDir, version, "schema.json")
}

// Fetch downloads the OCSF schema export for a version from
// {baseURL}?version={version} and caches it at destPath. The body is
// validated as a parseable schema before anything touches disk, so a bad
// response never clobbers a good cache entry.
func Fetch(ctx context.Context, version, baseURL, destPath string) (*Schema, error) {
	url := fmt.Sprintf("%s?version=%s", baseURL, version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	s, err := Parse(body)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(destPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &WriteError{Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(destPath, body, 0o644); err != nil {
		return nil, &WriteError{Path: destPath, Err: err}
	}
	return s, nil
}
