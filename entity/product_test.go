package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPriceDecoding(t *testing.T) {
	cases := map[string]Price{
		`25999`:           25999,
		`"₹25,999"`:       25999,
		`"Rs. 1,499.50"`:  1499.5,
		`"Rs. 25,999"`:    25999,
		`"Rs.25999"`:      25999,
		`"INR 25,999.00"`: 25999,
		`"₹ 18,500/-"`:    18500,
		`-10`:             0,
		`"-10"`:           0,
		`"call us"`:       0,
		`true`:            0,
		`null`:            0,
		`{"a":1}`:         0,
	}
	for raw, want := range cases {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(raw), &p), raw)
		assert.Equal(t, want, p, raw)
	}
}

func TestProductDecodingTolerantShapes(t *testing.T) {
	raw := `{
		"title": "  LED 42  ",
		"price": "₹25,999",
		"features": "Full HD, Dolby Audio; Wi-Fi · Bluetooth",
		"description": "A bright panel.",
		"images": ["a.jpg", " ", "b.png"]
	}`
	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	p.Normalize()

	assert.Equal(t, "LED 42", p.Title)
	assert.Equal(t, Price(25999), p.Price)
	assert.Equal(t, Features{"Full HD", "Dolby Audio", "Wi-Fi", "Bluetooth"}, p.Features)
	assert.Equal(t, "A bright panel.", p.Description.In(English))
	assert.Equal(t, "", p.Description.In(Gujarati))
	assert.Equal(t, []string{"a.jpg", "b.png"}, p.Images)
}

func TestProductDecodingBilingualDescriptionYAML(t *testing.T) {
	raw := `
title: LED 42
price: 25999
features:
  - Full HD
  - " "
  - Smart TV
description:
  EN: A bright panel.
  gu: તેજસ્વી પેનલ.
`
	var p Product
	require.NoError(t, yaml.Unmarshal([]byte(raw), &p))
	p.Normalize()

	assert.Equal(t, Price(25999), p.Price)
	assert.Equal(t, Features{"Full HD", "Smart TV"}, p.Features)
	assert.Equal(t, "A bright panel.", p.Description.In(English))
	assert.Equal(t, "તેજસ્વી પેનલ.", p.Description.In(Gujarati))
	assert.NotNil(t, p.Images)
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, Gujarati, ParseLanguage(" GU "))
	assert.Equal(t, English, ParseLanguage("fr"))
	assert.Equal(t, English, ParseLanguage(""))
	assert.False(t, Language("fr").Valid())
	assert.Equal(t, "gu-IN", Gujarati.SpeechTag())
	assert.Equal(t, "en-IN", English.SpeechTag())
}

func TestSessionFlags(t *testing.T) {
	s := NewSession("abc")
	assert.Equal(t, English, s.Language)
	assert.Equal(t, "ktpl_welcome_spoken_default", WelcomeKey(""))
	assert.Equal(t, "ktpl_welcome_spoken_led_42", WelcomeKey("led.42"))

	assert.False(t, s.IsWelcomed("led42"))
	s.MarkWelcomed("led42")
	assert.True(t, s.IsWelcomed("led42"))
	assert.False(t, s.IsWelcomed("fridge"))

	s.SetCarouselIndex("led.42", 2)
	assert.Equal(t, 2, s.CarouselIndex("led.42"))
	assert.Equal(t, 0, s.CarouselIndex("fridge"))
}
