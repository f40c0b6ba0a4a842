package locale

import (
	"testing"

	"Showcase/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundle(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Tap mic or type your question", b.T(entity.English, PanelHint))
	assert.Equal(t, "માઇક દબાવો અથવા લખો", b.T(entity.Gujarati, PanelHint))

	// missing in gujarati
	assert.Equal(t, "our store", b.T(entity.Gujarati, DefaultStore))
	assert.Equal(t, "no_such_key", b.T(entity.English, "no_such_key"))
	assert.Equal(t, "Unnamed product", b.T(entity.Language("fr"), UnnamedProduct))
}

func TestFormat(t *testing.T) {
	b := MustLoad()

	got := b.Format(entity.English, Welcome, map[string]string{
		"store": "Kalindi Tradelinks Private Limited",
		"title": "LED 42",
	})
	assert.Equal(t, "Welcome to Kalindi Tradelinks Private Limited. How can I help you about the LED 42?", got)

	got = b.Format(entity.Gujarati, Greeting, map[string]string{"title": "LED 42"})
	assert.Equal(t, "હેલો, અવાજ માટે Product Assistant દબાવો અથવા LED 42 વિશે પૂછવા માટે લખો.", got)
}
