package gallery

import (
	"context"
	"log/slog"
	"time"

	"Showcase/internal/lib/sl"

	"golang.org/x/sync/errgroup"
)

const maxParallelProbes = 4

// Image is a product image name and the URL of the variant that loaded.
type Image struct {
	Name string
	Src  string
}

// Resolver walks candidate lists in order and stops at the first variant
// that loads. Exhausting the list is not an error: the image is just hidden.
type Resolver struct {
	prober  Prober
	prefix  string
	timeout time.Duration
	log     *slog.Logger
}

// NewResolver serves resolved files under urlPrefix. timeout bounds the
// probing of one image; zero means no bound.
func NewResolver(prober Prober, urlPrefix string, timeout time.Duration, log *slog.Logger) *Resolver {
	return &Resolver{
		prober:  prober,
		prefix:  urlPrefix,
		timeout: timeout,
		log:     log.With(sl.Module("gallery")),
	}
}

// Resolve returns the URL of the first candidate of name that loads.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, bool) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	src, ok := r.first(ctx, Candidates(name))
	if !ok {
		r.log.With(slog.String("image", name)).Debug("no image variant loaded")
	}
	return src, ok
}

// ResolveAll resolves names concurrently and returns the found ones in the
// input order.
func (r *Resolver) ResolveAll(ctx context.Context, names []string) []Image {
	found := make([]Image, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelProbes)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if src, ok := r.Resolve(gctx, name); ok {
				found[i] = Image{Name: name, Src: src}
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Image, 0, len(names))
	for _, img := range found {
		if img.Src != "" {
			out = append(out, img)
		}
	}
	return out
}

// ResolveLogo gives the logo candidates until grace elapses; false means the
// page should show its fallback mark.
func (r *Resolver) ResolveLogo(ctx context.Context, candidates []string, grace time.Duration) (string, bool) {
	if grace > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, grace)
		defer cancel()
	}
	return r.first(ctx, Expand(candidates))
}

func (r *Resolver) first(ctx context.Context, candidates []string) (string, bool) {
	for _, c := range candidates {
		if ctx.Err() != nil {
			return "", false
		}
		if err := r.prober.Probe(ctx, c); err == nil {
			return r.prefix + EscapePath(c), true
		}
	}
	return "", false
}
