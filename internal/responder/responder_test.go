package responder

import (
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"Showcase/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func led42() *entity.Product {
	return &entity.Product{
		ID:       "led42",
		Title:    "LED 42",
		Price:    25999,
		SizeText: "42 inch",
		Images:   []string{"front.jpg", "side.jpg", "back.jpg"},
		Features: entity.Features{"Full HD", "Dolby Audio", "Smart TV", "Wi-Fi", "Bluetooth"},
		Description: entity.Description{
			entity.English:  "A bright 42 inch panel. Great for living rooms.",
			entity.Gujarati: "તેજસ્વી 42 ઇંચ પેનલ. લિવિંગ રૂમ માટે ઉત્તમ.",
		},
	}
}

func TestPriceScenario(t *testing.T) {
	r := New(nil, led42(), quietLog())

	got := r.Match("what is the price", entity.English)
	assert.Equal(t, IntentPrice, got.Intent)
	assert.Contains(t, got.Text, "₹25,999")
	assert.Contains(t, got.Text, "LED 42")

	gu := r.FindAnswer("કિંમત કેટલી છે?", entity.Gujarati)
	assert.Contains(t, gu, "₹25,999")
	assert.Contains(t, gu, "LED 42")
}

func TestCatchAllIsExact(t *testing.T) {
	r := New(nil, led42(), quietLog())

	assert.Equal(t, FallbackEnglish, r.FindAnswer("कुछ भी", entity.English))
	assert.Equal(t, FallbackGujarati, r.FindAnswer("कुछ भी", entity.Gujarati))
	assert.Equal(t, IntentFallback, r.Match("", entity.English).Intent)
}

func TestAnswersAreNeverEmpty(t *testing.T) {
	inputs := []string{
		"", " ", "\n\n", "price", "PRICE", "size?", "warranty", "install", "ship it", "features",
		"hdmi", "describe", "short description", "why buy", "power", "reviews", "????", "कुछ भी",
		"માપ", "વોરંટી", strings.Repeat("x", 5000),
	}
	products := []*entity.Product{led42(), {}}
	for _, p := range products {
		r := New(nil, p, quietLog())
		for _, lang := range entity.Languages {
			for _, in := range inputs {
				assert.NotEmpty(t, strings.TrimSpace(r.FindAnswer(in, lang)), "input %q lang %s", in, lang)
			}
		}
	}
}

func TestEarlierRuleWins(t *testing.T) {
	r := New(nil, led42(), quietLog())
	rules := DefaultRules()

	cases := []struct {
		text string
		want string
	}{
		{"price and warranty please", IntentPrice},
		{"warranty and price please", IntentPrice},
		{"size of the hdmi ports", IntentDimensions},
		{"is installation service free", IntentWarranty},
		{"delivery features", IntentDelivery},
		{"spec detail", IntentFeatures},
		{"what are the benefits", IntentAdvantages},
		{"power reviews", IntentPower},
	}
	for _, tc := range cases {
		got := r.Match(tc.text, entity.English)
		assert.Equal(t, tc.want, got.Intent, tc.text)

		// every rule before the winner must not match
		for _, rule := range rules {
			if rule.Intent == tc.want {
				break
			}
			assert.False(t, rule.Pattern.MatchString(tc.text), "%s should not match %q", rule.Intent, tc.text)
		}
	}
}

func TestMissingFieldsUseDefaults(t *testing.T) {
	r := New(nil, &entity.Product{Title: "Bare"}, quietLog())

	assert.Equal(t, "Warranty details are not available. Please check with the store.", r.FindAnswer("warranty?", entity.English))
	assert.Equal(t, "No specific features listed.", r.FindAnswer("features", entity.English))
	assert.Equal(t, "Bare", r.FindAnswer("description", entity.English))
	assert.Contains(t, r.FindAnswer("why buy", entity.English), "Great value and reliable performance")
	assert.Contains(t, r.FindAnswer("price", entity.English), "₹0")
}

func TestProductFieldsAreUsed(t *testing.T) {
	p := led42()
	p.Warranty = "1 year comprehensive"
	p.Ports = "3 HDMI, 2 USB"
	r := New(nil, p, quietLog())

	assert.Equal(t, "Warranty: 1 year comprehensive", r.FindAnswer("warranty", entity.English))
	assert.Equal(t, "વોરંટી: 1 year comprehensive", r.FindAnswer("warranty", entity.Gujarati))
	assert.Equal(t, "Ports: 3 HDMI, 2 USB", r.FindAnswer("how many usb", entity.English))
	assert.Equal(t, "Key features:\n• Full HD\n• Dolby Audio\n• Smart TV\n• Wi-Fi\n• Bluetooth", r.FindAnswer("features", entity.English))
	assert.Contains(t, r.FindAnswer("why buy", entity.English), "Why buy: Full HD, Dolby Audio, Smart TV, Wi-Fi.")
}

func TestShortDescription(t *testing.T) {
	r := New(nil, led42(), quietLog())

	assert.Equal(t, "A bright 42 inch panel. Great for living rooms.", r.FindAnswer("description", entity.English))
	assert.Equal(t, "A bright 42 inch panel. (3 images available)", r.FindAnswer("short description", entity.English))
	assert.Equal(t, "તેજસ્વી 42 ઇંચ પેનલ (3 છબી)", r.FindAnswer("સંક્ષિપ્ત વર્ણન", entity.Gujarati))

	single := led42()
	single.Images = []string{"one.jpg"}
	assert.Equal(t, "A bright 42 inch panel. (1 image available)", New(nil, single, quietLog()).FindAnswer("quick detail", entity.English))
}

func TestLanguageIsChosenPerCall(t *testing.T) {
	r := New(nil, led42(), quietLog())

	en := r.FindAnswer("warranty", entity.English)
	gu := r.FindAnswer("warranty", entity.Gujarati)
	assert.NotEqual(t, en, gu)
	assert.Equal(t, en, r.FindAnswer("warranty", entity.Language("fr")))
}

func TestDeterministic(t *testing.T) {
	r := New(nil, led42(), quietLog())
	first := r.FindAnswer("tell me the price", entity.Gujarati)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, r.FindAnswer("tell me the price", entity.Gujarati))
	}
}

func TestFailingReplyReturnsApology(t *testing.T) {
	boom := Rule{
		Intent:  "boom",
		Pattern: regexp.MustCompile(`(?i)boom`),
		Reply: map[entity.Language]Producer{
			entity.English:  func(Query) (string, error) { return "", errors.New("formatting failed") },
			entity.Gujarati: func(q Query) (string, error) { return q.Product.Title, nil },
		},
	}
	empty := Rule{
		Intent:  "empty",
		Pattern: regexp.MustCompile(`(?i)empty`),
		Reply:   fixed(" ", " "),
	}
	table := MustTable(boom, empty, DefaultRules()[len(DefaultRules())-1])

	// nil product makes the gujarati producer panic
	r := New(table, nil, quietLog())

	got := r.Match("boom", entity.English)
	assert.True(t, got.Failed)
	assert.Equal(t, Apology(entity.English), got.Text)
	assert.Equal(t, Apology(entity.Gujarati), r.FindAnswer("BOOM", entity.Gujarati))
	assert.Equal(t, Apology(entity.English), r.FindAnswer("empty", entity.English))
	assert.Equal(t, FallbackEnglish, r.FindAnswer("other", entity.English))
}

func TestNewTableValidatesOrder(t *testing.T) {
	rules := DefaultRules()
	catchAll := rules[len(rules)-1]

	_, err := NewTable(append([]Rule{catchAll}, rules...)...)
	assert.Error(t, err)

	_, err = NewTable(rules[:len(rules)-1]...)
	assert.Error(t, err)

	_, err = NewTable()
	assert.Error(t, err)

	_, err = NewTable(Rule{Intent: "nopattern", Reply: fixed("a", "b")}, catchAll)
	assert.Error(t, err)

	table, err := NewTable(rules...)
	require.NoError(t, err)
	assert.Equal(t, []string{
		IntentPrice, IntentDimensions, IntentWarranty, IntentInstallation, IntentDelivery, IntentFeatures,
		IntentPorts, IntentDescription, IntentAdvantages, IntentPower, IntentReviews, IntentFallback,
	}, table.Intents())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹25,999", FormatPrice(25999))
	assert.Equal(t, "₹0", FormatPrice(0))
	assert.Equal(t, "₹999", FormatPrice(999))
}
