// Package fs provides a file-based docsearch.Fetcher for documentation
// exported to a local directory.
package fs

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Ensure Fetcher implements docsearch.Fetcher at compile time.
var _ docsearch.Fetcher = (*Fetcher)(nil)

// Fetcher reads documents from the local filesystem. URLs are plain paths
// or file:// URLs.
type Fetcher struct{}

// NewFetcher creates a new file-based Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch reads the file named by rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := URLToPath(rawURL)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docsearch.Errorf(docsearch.EFETCH, "file %s not found", path)
	} else if err != nil {
		return nil, err
	}
	return data, nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}

// URLToPath converts a file:// URL or plain path to a local file path.
// Example: file:///srv/docs/option.json → /srv/docs/option.json
func URLToPath(rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, "file://") {
		return filepath.FromSlash(rawURL), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "invalid file URL %q: %v", rawURL, err)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", docsearch.Errorf(docsearch.EINVALID, "file URL %q has remote host", rawURL)
	}
	return filepath.FromSlash(u.Path), nil
}
