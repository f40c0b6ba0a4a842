package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mappedJSON = `{
  "LED42": {"title": "LED 42", "price": 25999, "sizeText": "42 inch", "images": ["front.jpg", "side view.png"]},
  "Alpha55": {"title": "Alpha 55", "price": "₹54,990"}
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	c, err := Parse("products.json", []byte(mappedJSON))
	require.NoError(t, err)

	upper, upperKey := c.Resolve("LED42")
	lower, lowerKey := c.Resolve("led42")
	require.NotNil(t, upper)
	assert.Same(t, upper, lower)
	assert.Equal(t, "LED42", upperKey)
	assert.Equal(t, "LED42", lowerKey)
}

func TestResolveFallsBackToFirstInSourceOrder(t *testing.T) {
	c, err := Parse("products.json", []byte(`{"zeta": {"title": "Z"}, "alpha": {"title": "A"}}`))
	require.NoError(t, err)

	for _, key := range []string{"", "   ", "missing"} {
		p, k := c.Resolve(key)
		require.NotNil(t, p, key)
		assert.Equal(t, "zeta", k)
		assert.Equal(t, "Z", p.Title)
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	for _, c := range []*Catalog{Empty(), mustParse(t, `{}`), mustParse(t, `[]`), mustParse(t, `null`)} {
		p, key := c.Resolve("anything")
		assert.Nil(t, p)
		assert.Empty(t, key)
	}
}

func TestParseListShapeKeysByLowercasedID(t *testing.T) {
	c := mustParse(t, `[{"id": "TV-42", "title": "TV"}, {"title": "no id"}, {"id": "Fridge", "title": "Cold"}]`)

	assert.Equal(t, []string{"tv-42", "fridge"}, c.Keys())
	assert.Equal(t, 1, c.Skipped())

	p, key := c.Resolve("TV-42")
	require.NotNil(t, p)
	assert.Equal(t, "tv-42", key)
	assert.Equal(t, "TV-42", p.ID)
}

func TestParseDefaultsMalformedFields(t *testing.T) {
	c := mustParse(t, `{"odd": {"title": 12, "price": "call us", "images": null}, "bare": "oops"}`)

	odd, _ := c.Get("odd")
	require.NotNil(t, odd)
	assert.Equal(t, float64(0), float64(odd.Price))
	assert.Empty(t, odd.Title)
	assert.NotNil(t, odd.Images)
	assert.Empty(t, odd.SizeText)

	bare, ok := c.Get("bare")
	require.True(t, ok)
	assert.Equal(t, "bare", bare.ID)
}

func TestParseCoercesFormattedPrice(t *testing.T) {
	c := mustParse(t, mappedJSON)
	p, _ := c.Get("Alpha55")
	assert.Equal(t, float64(54990), float64(p.Price))
}

func TestParseYAMLKeepsOrder(t *testing.T) {
	doc := `
zeta:
  title: Zeta
  price: 100
  features: [HDR, Dolby Audio]
alpha:
  title: Alpha
  description:
    en: English text.
    gu: ગુજરાતી.
`
	c, err := Parse("catalog.yaml", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha"}, c.Keys())
	zeta, _ := c.Get("zeta")
	assert.Equal(t, []string{"HDR", "Dolby Audio"}, []string(zeta.Features))
	alpha, _ := c.Get("alpha")
	assert.Equal(t, "English text.", alpha.Description["en"])
}

func TestParseRejectsScalarDocument(t *testing.T) {
	_, err := Parse("products.json", []byte(`"just a string"`))
	assert.Error(t, err)
}

func TestLoaderReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(mappedJSON), 0o644))

	c, err := NewLoader(testLogger()).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestLoaderFetchesURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(mappedJSON))
	}))
	defer srv.Close()

	l := NewLoader(testLogger())
	c, err := l.Load(context.Background(), srv.URL+"/products.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"LED42", "Alpha55"}, c.Keys())

	_, err = l.Load(context.Background(), srv.URL+"/missing.json")
	assert.Error(t, err)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader(testLogger()).Load(context.Background(), filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func mustParse(t *testing.T, doc string) *Catalog {
	t.Helper()
	c, err := Parse("products.json", []byte(doc))
	require.NoError(t, err)
	return c
}
