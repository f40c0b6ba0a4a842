package entity

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Product is a single catalog record. Zero values stand in for absent fields.
type Product struct {
	ID           string      `json:"id" yaml:"id"`
	Title        string      `json:"title" yaml:"title"`
	Price        Price       `json:"price" yaml:"price"`
	SizeText     string      `json:"sizeText" yaml:"sizeText"`
	Images       []string    `json:"images" yaml:"images"`
	Dimensions   string      `json:"dimensions,omitempty" yaml:"dimensions"`
	Warranty     string      `json:"warranty,omitempty" yaml:"warranty"`
	Installation string      `json:"installation,omitempty" yaml:"installation"`
	Delivery     string      `json:"delivery,omitempty" yaml:"delivery"`
	Features     Features    `json:"features,omitempty" yaml:"features"`
	Ports        string      `json:"ports,omitempty" yaml:"ports"`
	Description  Description `json:"description,omitempty" yaml:"description"`
	Brand        string      `json:"brand,omitempty" yaml:"brand"`
}

// Normalize trims text fields and replaces nil collections with empty ones.
func (p *Product) Normalize() {
	p.ID = strings.TrimSpace(p.ID)
	p.Title = strings.TrimSpace(p.Title)
	p.SizeText = strings.TrimSpace(p.SizeText)
	if p.Images == nil {
		p.Images = []string{}
	}
	images := p.Images[:0]
	for _, img := range p.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	p.Images = images
	if p.Price < 0 || math.IsNaN(float64(p.Price)) || math.IsInf(float64(p.Price), 0) {
		p.Price = 0
	}
}

// Price is a non-negative amount in rupees. It accepts JSON numbers and
// formatted strings like "₹25,999"; anything else decodes to 0.
type Price float64

var priceNumber = regexp.MustCompile(`\d[\d,]*(\.\d+)?`)

func (p *Price) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = 0
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*p = clampPrice(v)
	case string:
		*p = ParsePrice(v)
	default:
		*p = 0
	}
	return nil
}

func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*p = 0
		return nil
	}
	*p = ParsePrice(node.Value)
	return nil
}

// ParsePrice reads the first number in s, so currency prefixes such as
// "Rs." or "INR" and group separators are ignored.
func ParsePrice(s string) Price {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return 0
	}
	num := priceNumber.FindString(s)
	if num == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil {
		return 0
	}
	return clampPrice(f)
}

func clampPrice(f float64) Price {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Price(f)
}

// Features is an ordered feature list. A single string is split on , ; and ·
type Features []string

var featureSep = regexp.MustCompile(`\s*[,;·]\s*`)

// SplitFeatures splits a delimited feature string, dropping empty items.
func SplitFeatures(s string) Features {
	out := Features{}
	for _, item := range featureSep.Split(s, -1) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (f *Features) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = cleanFeatures(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = SplitFeatures(s)
		return nil
	}
	*f = nil
	return nil
}

func (f *Features) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			*f = nil
			return nil
		}
		*f = cleanFeatures(list)
	case yaml.ScalarNode:
		*f = SplitFeatures(node.Value)
	default:
		*f = nil
	}
	return nil
}

func cleanFeatures(list []string) Features {
	out := Features{}
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Description holds per-language description text. A plain string is
// treated as the English text.
type Description map[Language]string

func (d *Description) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err == nil {
		*d = descriptionOf(m)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = Description{English: s}
		return nil
	}
	*d = nil
	return nil
}

func (d *Description) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			*d = nil
			return nil
		}
		*d = descriptionOf(m)
	case yaml.ScalarNode:
		*d = Description{English: node.Value}
	default:
		*d = nil
	}
	return nil
}

func descriptionOf(m map[string]string) Description {
	d := Description{}
	for k, v := range m {
		d[Language(strings.ToLower(k))] = strings.TrimSpace(v)
	}
	return d
}

// In returns the description for lang, or "" when absent.
func (d Description) In(lang Language) string {
	if d == nil {
		return ""
	}
	return d[lang]
}
