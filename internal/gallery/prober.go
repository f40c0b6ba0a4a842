package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("image not found")

// Prober checks whether a candidate path can be served.
type Prober interface {
	Probe(ctx context.Context, path string) error
}

// FileProber looks candidates up under a local assets directory.
type FileProber struct {
	Dir string
}

func (p FileProber) Probe(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	info, err := os.Stat(filepath.Join(p.Dir, filepath.FromSlash(path)))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return nil
}

// HTTPProber issues HEAD requests against a remote assets base URL.
type HTTPProber struct {
	BaseURL string
	Client  *http.Client
}

func (p HTTPProber) Probe(ctx context.Context, path string) error {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, strings.TrimRight(p.BaseURL, "/")+"/"+EscapePath(path), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", path, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s (%d)", ErrNotFound, path, resp.StatusCode)
	}
	return nil
}

// EscapePath escapes each segment of a slash separated path.
func EscapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
