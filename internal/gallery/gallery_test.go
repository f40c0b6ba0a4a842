package gallery

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCandidatesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"side view.png",
		"sideview.png",
		"side-view.png",
		"side_view.png",
		"side view.avif",
		"side view.webp",
		"side view.jpg",
		"side view.jpeg",
	}, Candidates("side view.png"))

	assert.Equal(t, []string{"front.avif", "front.webp", "front.jpg", "front.jpeg", "front.png"}, Candidates("front"))
}

func TestResolvePicksFirstExisting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "side-view.png")
	writeFile(t, dir, "side_view.png")
	writeFile(t, dir, "front.webp")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.jpg"), nil, 0o644))

	r := NewResolver(FileProber{Dir: dir}, "/assets/", time.Second, quietLog())

	src, ok := r.Resolve(context.Background(), "side view.png")
	require.True(t, ok)
	assert.Equal(t, "/assets/side-view.png", src)

	src, ok = r.Resolve(context.Background(), "front")
	require.True(t, ok)
	assert.Equal(t, "/assets/front.webp", src)

	_, ok = r.Resolve(context.Background(), "empty.jpg")
	assert.False(t, ok)

	_, ok = r.Resolve(context.Background(), "../secret.png")
	assert.False(t, ok)
}

func TestResolveAllKeepsOrderAndDropsMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg")
	writeFile(t, dir, "c.png")

	r := NewResolver(FileProber{Dir: dir}, "/assets/", time.Second, quietLog())
	got := r.ResolveAll(context.Background(), []string{"a.jpg", "b.jpg", "c"})

	assert.Equal(t, []Image{
		{Name: "a.jpg", Src: "/assets/a.jpg"},
		{Name: "c", Src: "/assets/c.png"},
	}, got)
}

func TestHTTPProberEscapesNames(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/img/ktpl new logo.png" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewResolver(HTTPProber{BaseURL: srv.URL + "/img"}, "/assets/", 0, quietLog())
	src, ok := r.ResolveLogo(context.Background(), []string{"ktpl-new-logo.png", "ktpl new logo.png"}, time.Second)
	require.True(t, ok)
	assert.Equal(t, "/assets/ktpl%20new%20logo.png", src)
	assert.Equal(t, int32(2), hits.Load())
}

type slowProber struct{}

func (slowProber) Probe(ctx context.Context, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestResolveLogoGivesUpAfterGrace(t *testing.T) {
	r := NewResolver(slowProber{}, "/assets/", 0, quietLog())

	start := time.Now()
	_, ok := r.ResolveLogo(context.Background(), []string{"logo.png", "logo.jpg"}, 50*time.Millisecond)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCarousel(t *testing.T) {
	c := Carousel{Len: 3}

	assert.Equal(t, 1, c.Next().Index)
	assert.Equal(t, 2, c.Prev().Index)
	assert.Equal(t, 0, c.Next().Next().Next().Index)
	assert.Equal(t, 2, c.Go(10).Index)
	assert.Equal(t, 0, c.Go(-3).Index)

	assert.Equal(t, 0, c.Swipe(-30).Index)
	assert.Equal(t, 1, c.Swipe(-41).Index)
	assert.Equal(t, 0, c.Swipe(80).Index)
	assert.Equal(t, 2, Carousel{Len: 3, Index: 2}.Swipe(-100).Index)

	empty := Carousel{}
	assert.Equal(t, 0, empty.Next().Prev().Swipe(-100).Index)

	_, ok := c.Apply("jump", 0, 0)
	assert.False(t, ok)
	moved, ok := c.Apply("go", 1, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, moved.Index)
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644))
}
