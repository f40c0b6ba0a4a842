package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"Showcase/internal/lib/sl"
)

// Loader reads a catalog document from a file or an http(s) URL.
type Loader struct {
	client *http.Client
	log    *slog.Logger
}

func NewLoader(log *slog.Logger) *Loader {
	return &Loader{
		client: &http.Client{},
		log:    log.With(sl.Module("catalog")),
	}
}

// Load fetches and parses source. Callers treat an error as an empty catalog.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}

	c, err := Parse(source, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	if c.Skipped() > 0 {
		l.log.With(
			slog.String("source", source),
			slog.Int("skipped", c.Skipped()),
		).Warn("catalog records without id skipped")
	}
	l.log.With(
		slog.String("source", source),
		slog.Int("size", c.Len()),
	).Debug("catalog loaded")

	return c, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch failed: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	return data, nil
}
