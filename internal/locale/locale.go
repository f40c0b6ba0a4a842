// Package locale holds the interface strings shown and spoken around the
// assistant, per language.
package locale

import (
	"embed"
	"fmt"
	"strings"

	"Showcase/entity"

	"gopkg.in/yaml.v3"
)

const (
	Welcome                = "welcome"
	Greeting               = "greeting"
	PanelHint              = "panel_hint"
	Listening              = "listening"
	HeardNothing           = "heard_nothing"
	SpeechUnsupported      = "speech_unsupported"
	RecognitionUnsupported = "recognition_unsupported"
	ProductNotFound        = "product_not_found"
	UnnamedProduct         = "unnamed_product"
	DefaultStore           = "default_store"
	ProductImage           = "product_image"
)

//go:embed *.yaml
var files embed.FS

type Bundle struct {
	dict     map[entity.Language]map[string]string
	fallback entity.Language
}

// Load reads the embedded string tables. English is required, the other
// languages may miss keys.
func Load() (*Bundle, error) {
	b := &Bundle{
		dict:     make(map[entity.Language]map[string]string),
		fallback: entity.English,
	}
	for _, lang := range entity.Languages {
		raw, err := files.ReadFile(string(lang) + ".yaml")
		if err != nil {
			if lang == b.fallback {
				return nil, fmt.Errorf("load locale %s: %w", lang, err)
			}
			continue
		}
		var m map[string]string
		if err = yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", lang, err)
		}
		b.dict[lang] = m
	}
	if _, ok := b.dict[b.fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", b.fallback)
	}
	return b, nil
}

func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// T returns the string for key in lang, falling back to English and finally
// to the key itself.
func (b *Bundle) T(lang entity.Language, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := b.dict[b.fallback][key]; ok {
		return v
	}
	return key
}

// Format fills {name} placeholders of the string for key.
func (b *Bundle) Format(lang entity.Language, key string, args map[string]string) string {
	s := b.T(lang, key)
	if len(args) == 0 {
		return s
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
